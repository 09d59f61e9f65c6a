// Package OffsetFetch implements the v0 (ZooKeeper storage) and v1 (Kafka
// storage) OffsetFetch request/response pair. Both versions share the same
// wire shape; the version alone selects which storage backend the broker
// reads from.
package OffsetFetch

import (
	"github.com/kafkaclient/gokafka/api"
)

// NewRequest builds an OffsetFetch request for a single topic-partition.
// version must be 0 (ZooKeeper storage) or 1 (Kafka storage).
func NewRequest(group, topic string, partition int32, version int16) *api.Request {
	return &api.Request{
		ApiKey:     api.OffsetFetch,
		ApiVersion: version,
		Body: Request{
			GroupId: group,
			Topics:  []Topic{{Name: topic, PartitionIndexes: []int32{partition}}},
		},
	}
}

type Request struct {
	GroupId string
	Topics  []Topic
}

type Topic struct {
	Name             string
	PartitionIndexes []int32
}
