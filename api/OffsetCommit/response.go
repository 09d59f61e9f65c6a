package OffsetCommit

// Response is identical in shape for v0 and v1: per-partition error codes,
// no offsets (the broker echoes back only success/failure).
type Response struct {
	Topics []TopicResponse
}

type TopicResponse struct {
	Name       string
	Partitions []PartitionResponse
}

type PartitionResponse struct {
	PartitionIndex int32
	ErrorCode      int16
}

// Partition returns the PartitionResponse for a given partition index, or
// nil if the topic/partition is missing from the response (a protocol
// violation, but the offset manager treats it defensively).
func (r *Response) Partition(topic string, partition int32) *PartitionResponse {
	for _, t := range r.Topics {
		if t.Name != topic {
			continue
		}
		for i := range t.Partitions {
			if t.Partitions[i].PartitionIndex == partition {
				return &t.Partitions[i]
			}
		}
	}
	return nil
}
