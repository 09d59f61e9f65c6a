package OffsetFetch

// Response is the v0/v1 shape: no top-level throttle or error fields (those
// were added in v2+), just the per-topic, per-partition results.
type Response struct {
	Topics []TopicResponse
}

type TopicResponse struct {
	Name       string
	Partitions []PartitionResponse
}

type PartitionResponse struct {
	PartitionIndex  int32
	CommittedOffset int64
	Metadata        string
	ErrorCode       int16
}

// Partition returns the PartitionResponse for a given partition index, or
// nil if it is missing from the response.
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
