// Package kafkaerrors defines the typed Kafka protocol error codes and the
// error taxonomy used by the wire codec and the offset manager.
package kafkaerrors

import "fmt"

// Error codes as returned by Kafka brokers. Only the codes this client
// actually has to reason about (OffsetCommit/OffsetFetch/Offset responses
// and group fencing) are named; unrecognized codes still round trip through
// Error.Code.
const (
	NONE                        int16 = 0
	OFFSET_OUT_OF_RANGE         int16 = 1
	CORRUPT_MESSAGE             int16 = 2
	UNKNOWN_TOPIC_OR_PARTITION  int16 = 3
	INVALID_FETCH_SIZE          int16 = 4
	LEADER_NOT_AVAILABLE        int16 = 5
	NOT_LEADER_FOR_PARTITION    int16 = 6
	REQUEST_TIMED_OUT           int16 = 7
	OFFSET_METADATA_TOO_LARGE   int16 = 12
	NETWORK_EXCEPTION           int16 = 13
	OFFSET_LOAD_IN_PROGRESS     int16 = 14
	NOT_COORDINATOR             int16 = 16
	ILLEGAL_GENERATION          int16 = 22
	UNKNOWN_MEMBER_ID           int16 = 25
	REBALANCE_IN_PROGRESS       int16 = 27
)

var names = map[int16]string{
	NONE:                       "NONE",
	OFFSET_OUT_OF_RANGE:        "OFFSET_OUT_OF_RANGE",
	CORRUPT_MESSAGE:            "CORRUPT_MESSAGE",
	UNKNOWN_TOPIC_OR_PARTITION: "UNKNOWN_TOPIC_OR_PARTITION",
	INVALID_FETCH_SIZE:         "INVALID_FETCH_SIZE",
	LEADER_NOT_AVAILABLE:       "LEADER_NOT_AVAILABLE",
	NOT_LEADER_FOR_PARTITION:   "NOT_LEADER_FOR_PARTITION",
	REQUEST_TIMED_OUT:          "REQUEST_TIMED_OUT",
	OFFSET_METADATA_TOO_LARGE:  "OFFSET_METADATA_TOO_LARGE",
	NETWORK_EXCEPTION:          "NETWORK_EXCEPTION",
	OFFSET_LOAD_IN_PROGRESS:    "OFFSET_LOAD_IN_PROGRESS",
	NOT_COORDINATOR:            "NOT_COORDINATOR_FOR_CONSUMER",
	ILLEGAL_GENERATION:         "ILLEGAL_GENERATION",
	UNKNOWN_MEMBER_ID:          "UNKNOWN_MEMBER_ID",
	REBALANCE_IN_PROGRESS:      "REBALANCE_IN_PROGRESS",
}

// Error wraps a Kafka broker error code. It is returned whenever a response
// carries a non-NONE error code; transport and malformed-wire failures are
// not Errors, they are plain wrapped errors (see github.com/pkg/errors
// usage in client and offsetmanager).
type Error struct {
	Code int16
}

func (e *Error) Error() string {
	if name, ok := names[e.Code]; ok {
		return fmt.Sprintf("kafka error %d (%s)", e.Code, name)
	}
	return fmt.Sprintf("kafka error %d", e.Code)
}

// Name returns the protocol name for a code, or "" if unknown.
func Name(code int16) string {
	return names[code]
}

// Malformed indicates the wire decoder could not make sense of a buffer: a
// declared length ran past the end of the buffer, or (in strict mode) a
// record's CRC did not match. It is always fatal to the request/response
// that produced it.
type Malformed struct {
	Reason string
}

func (e *Malformed) Error() string {
	return "malformed kafka wire data: " + e.Reason
}
