// Package Offset implements the v0 Offset API request and response (Kafka
// calls this "ListOffsets"; this client uses the spec's name since it is
// how the Offset Manager's earliest-offset fallback refers to it).
package Offset

import (
	"github.com/kafkaclient/gokafka/api"
)

// Sentinel values for RequestPartition.Time.
const (
	Latest   int64 = -1
	Earliest int64 = -2
)

// NewRequest builds an Offset request for a single topic-partition. time is
// Earliest, Latest, or a Unix-ms timestamp; maxOffsets bounds how many
// offsets the broker returns (the offset manager's fallback always asks
// for 1).
func NewRequest(topic string, partition int32, time int64, maxOffsets int32) *api.Request {
	p := RequestPartition{Partition: partition, Time: time, MaxNumOffsets: maxOffsets}
	t := RequestTopic{Topic: topic, Partitions: []RequestPartition{p}}
	return &api.Request{
		ApiKey:     api.Offset,
		ApiVersion: 0,
		Body: Request{
			ReplicaId: -1,
			Topics:    []RequestTopic{t},
		},
	}
}

type Request struct {
	ReplicaId int32
	Topics    []RequestTopic
}

type RequestTopic struct {
	Topic      string
	Partitions []RequestPartition
}

type RequestPartition struct {
	Partition     int32
	Time          int64
	MaxNumOffsets int32
}
