package Offset

// Response is the v0 Offset response: per-partition error code plus a list
// of matching offsets (v0 supports returning more than one offset per
// partition; this client always requests MaxNumOffsets=1).
type Response struct {
	Topics []TopicResponse
}

type TopicResponse struct {
	Topic      string
	Partitions []PartitionResponse
}

type PartitionResponse struct {
	Partition int32
	ErrorCode int16
	Offsets   []int64
}

// Partition returns the PartitionResponse for topic/partition, or nil.
func (r *Response) Partition(topic string, partition int32) *PartitionResponse {
	for _, t := range r.Topics {
		if t.Topic != topic {
			continue
		}
		for i := range t.Partitions {
			if t.Partitions[i].Partition == partition {
				return &t.Partitions[i]
			}
		}
	}
	return nil
}
