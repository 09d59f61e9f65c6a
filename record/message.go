// Package record implements marshaling and unmarshaling of the Kafka
// Message wire format (the pre-KIP-98 magic-0 message layout: a single
// record framed with an offset, a size, a CRC, a magic byte and
// attributes; the timestamp field that magic 1 adds is neither written nor
// read) and of MessageSet, the concatenation framing Kafka uses for
// sequences of Messages in Produce and Fetch bodies.
package record

import (
	"hash/crc32"

	"github.com/kafkaclient/gokafka/kafkaerrors"
	"github.com/kafkaclient/gokafka/wire"
)

// Message is a single Kafka record. Offset, MagicByte and Attributes are
// on the wire; Topic, Partition and Metadata are producer-side bookkeeping
// that never travels in the Message encoding itself.
type Message struct {
	Offset     int64
	MagicByte  int8
	Attributes int8
	Key        []byte
	Value      []byte

	Topic     string
	Partition int32
	Metadata  string
}

// New returns a Message with the given key and value and the wire defaults
// (MagicByte 0, Attributes 0, Offset 0).
func New(key, value []byte) *Message {
	return &Message{Key: key, Value: value}
}

// headerSize is the number of size-counted bytes before the BYTES(key) /
// BYTES(value) fields: magic(1) + attributes(1).
const headerSize = 2

// crcSize is the width of the size-counted CRC field.
const crcSize = 4

// Encode serializes m as offset(8) | size(4) | crc(4) | magic(1) |
// attributes(1) | BYTES(key) | BYTES(value), computing size and the IEEE
// CRC32 of everything from magic_byte to the end of value.
func (m *Message) Encode() []byte {
	var body []byte
	body = wire.PutInt8(body, m.MagicByte)
	body = wire.PutInt8(body, m.Attributes)
	body = wire.PutBytes(body, m.Key)
	body = wire.PutBytes(body, m.Value)

	size := int32(crcSize + len(body))
	crc := crc32.ChecksumIEEE(body)

	b := make([]byte, 0, 8+4+len(body))
	b = wire.PutInt64(b, m.Offset)
	b = wire.PutInt32(b, size)
	b = wire.PutInt32(b, int32(crc))
	b = append(b, body...)
	return b
}

// Decode reads a single Message off the front of b. If b is too short to
// contain the fixed-width header (offset+size), or shorter than the
// record's declared size, Decode returns (nil, b, nil): the caller (the
// MessageSet decoder) treats this as a truncated tail, not an error. If
// strict is true, Decode additionally verifies the embedded CRC and
// returns a *kafkaerrors.Malformed on mismatch.
func Decode(b []byte, strict bool) (*Message, []byte, error) {
	if len(b) < 8+4 {
		return nil, b, nil
	}
	offset, rest, _ := wire.GetInt64(b)
	size, rest, _ := wire.GetInt32(rest)
	if int(size) < 0 || len(rest) < int(size) {
		return nil, b, nil // truncated tail
	}
	recordBytes := rest[:size]
	tail := rest[size:]

	crc, body, err := wire.GetInt32(recordBytes)
	if err != nil {
		return nil, b, nil
	}
	if strict {
		if want := crc32.ChecksumIEEE(body); uint32(crc) != want {
			return nil, b, &kafkaerrors.Malformed{Reason: "message crc mismatch"}
		}
	}
	magic, body, err := wire.GetInt8(body)
	if err != nil {
		return nil, b, nil
	}
	attrs, body, err := wire.GetInt8(body)
	if err != nil {
		return nil, b, nil
	}
	key, body, err := wire.GetBytes(body)
	if err != nil {
		return nil, b, nil
	}
	value, _, err := wire.GetBytes(body)
	if err != nil {
		return nil, b, nil
	}
	m := &Message{
		Offset:     offset,
		MagicByte:  magic,
		Attributes: attrs,
		Key:        key,
		Value:      value,
	}
	return m, tail, nil
}
