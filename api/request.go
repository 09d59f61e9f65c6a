package api

import (
	"bytes"
	"encoding/binary"
	"reflect"

	"github.com/kafkaclient/gokafka/wire"
)

// https://kafka.apache.org/protocol
// https://kafka.apache.org/documentation/#messageformat
// https://cwiki.apache.org/confluence/display/KAFKA/A+Guide+To+The+Kafka+Protocol#AGuideToTheKafkaProtocol-Messagesets

// Request is the envelope every API call is wrapped in: api_key,
// api_version, correlation_id, client_id, followed by the payload in Body.
// Body's encoding is delegated to the reflective struct marshaler in
// package wire, the way the per-API NewRequest constructors build it (see
// api/OffsetCommit, api/OffsetFetch, api/Offset).
type Request struct {
	ApiKey        int16
	ApiVersion    int16
	CorrelationId int32
	ClientId      string
	Body          interface{}
}

// Bytes marshals the request, prefixed with its own int32 length, ready to
// write to a connection.
func (r *Request) Bytes() []byte {
	tmp := new(bytes.Buffer)
	wire.Write(tmp, reflect.ValueOf(r))
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.BigEndian, int32(tmp.Len()))
	tmp.WriteTo(buf)
	return buf.Bytes()
}
