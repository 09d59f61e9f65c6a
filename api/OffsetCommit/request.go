// Package OffsetCommit implements the v0 (ZooKeeper storage) and v1 (Kafka
// storage) OffsetCommit request/response pair.
package OffsetCommit

import (
	"github.com/kafkaclient/gokafka/api"
)

// PartitionCommit is the offset and metadata to commit for one partition.
type PartitionCommit struct {
	Partition int32
	Offset    int64
	Metadata  string
}

// NewRequestV0 builds a ZooKeeper-storage OffsetCommit request: group plus
// a flat list of per-partition commits for a single topic.
func NewRequestV0(group, topic string, commits []PartitionCommit) *api.Request {
	partitions := make([]PartitionV0, len(commits))
	for i, c := range commits {
		partitions[i] = PartitionV0{
			PartitionIndex:    c.Partition,
			CommittedOffset:   c.Offset,
			CommittedMetadata: c.Metadata,
		}
	}
	return &api.Request{
		ApiKey:     api.OffsetCommit,
		ApiVersion: 0,
		Body: RequestV0{
			GroupId: group,
			Topics:  []TopicV0{{Name: topic, Partitions: partitions}},
		},
	}
}

// NewRequestV1 builds a Kafka-storage OffsetCommit request, fenced by
// generationId/memberId. Per-partition Timestamp is always encoded as -1
// ("broker-assigned"): this client never sets it itself.
func NewRequestV1(group string, generationId int32, memberId, topic string, commits []PartitionCommit) *api.Request {
	partitions := make([]PartitionV1, len(commits))
	for i, c := range commits {
		partitions[i] = PartitionV1{
			PartitionIndex:    c.Partition,
			CommittedOffset:   c.Offset,
			Timestamp:         -1,
			CommittedMetadata: c.Metadata,
		}
	}
	return &api.Request{
		ApiKey:     api.OffsetCommit,
		ApiVersion: 1,
		Body: RequestV1{
			GroupId:           group,
			GroupGenerationId: generationId,
			ConsumerId:        memberId,
			Topics:            []TopicV1{{Name: topic, Partitions: partitions}},
		},
	}
}

type RequestV0 struct {
	GroupId string
	Topics  []TopicV0
}

type TopicV0 struct {
	Name       string
	Partitions []PartitionV0
}

type PartitionV0 struct {
	PartitionIndex    int32
	CommittedOffset   int64
	CommittedMetadata string
}

type RequestV1 struct {
	GroupId           string
	GroupGenerationId int32
	ConsumerId        string
	Topics            []TopicV1
}

type TopicV1 struct {
	Name       string
	Partitions []PartitionV1
}

type PartitionV1 struct {
	PartitionIndex    int32
	CommittedOffset   int64
	Timestamp         int64
	CommittedMetadata string
}
