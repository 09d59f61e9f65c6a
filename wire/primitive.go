// Package wire implements marshaling and unmarshaling of Kafka protocol
// primitives (fixed width integers, length-prefixed strings and bytes,
// arrays) and, on top of those, reflection based marshaling of the request
// and response structs under api/.
package wire

import (
	"encoding/binary"

	"github.com/kafkaclient/gokafka/kafkaerrors"
)

var ord = binary.BigEndian

// PutInt8, PutInt16, PutInt32, PutInt64 append a big-endian, signed,
// fixed-width integer to dst.

func PutInt8(dst []byte, v int8) []byte  { return append(dst, byte(v)) }
func PutInt16(dst []byte, v int16) []byte {
	var b [2]byte
	ord.PutUint16(b[:], uint16(v))
	return append(dst, b[:]...)
}
func PutInt32(dst []byte, v int32) []byte {
	var b [4]byte
	ord.PutUint32(b[:], uint32(v))
	return append(dst, b[:]...)
}
func PutInt64(dst []byte, v int64) []byte {
	var b [8]byte
	ord.PutUint64(b[:], uint64(v))
	return append(dst, b[:]...)
}

// GetInt8, GetInt16, GetInt32, GetInt64 read a fixed-width integer off the
// front of b, returning the value and the remaining buffer. They return a
// *kafkaerrors.Malformed if b is too short.

func GetInt8(b []byte) (int8, []byte, error) {
	if len(b) < 1 {
		return 0, b, &kafkaerrors.Malformed{Reason: "buffer too short for int8"}
	}
	return int8(b[0]), b[1:], nil
}

func GetInt16(b []byte) (int16, []byte, error) {
	if len(b) < 2 {
		return 0, b, &kafkaerrors.Malformed{Reason: "buffer too short for int16"}
	}
	return int16(ord.Uint16(b)), b[2:], nil
}

func GetInt32(b []byte) (int32, []byte, error) {
	if len(b) < 4 {
		return 0, b, &kafkaerrors.Malformed{Reason: "buffer too short for int32"}
	}
	return int32(ord.Uint32(b)), b[4:], nil
}

func GetInt64(b []byte) (int64, []byte, error) {
	if len(b) < 8 {
		return 0, b, &kafkaerrors.Malformed{Reason: "buffer too short for int64"}
	}
	return int64(ord.Uint64(b)), b[8:], nil
}

// PutString appends a Kafka STRING: an int16 length followed by that many
// bytes. An empty string is collapsed to the NULL sentinel (length -1) to
// match historical Kafka client behavior (see spec's NULL vs empty note);
// it is never encoded as a zero-length, non-null string.
func PutString(dst []byte, s string) []byte {
	if len(s) == 0 {
		return PutInt16(dst, -1)
	}
	dst = PutInt16(dst, int16(len(s)))
	return append(dst, s...)
}

// GetString reads a STRING off the front of b. NULL (-1) decodes to "".
func GetString(b []byte) (string, []byte, error) {
	n, rest, err := GetInt16(b)
	if err != nil {
		return "", b, err
	}
	if n == -1 {
		return "", rest, nil
	}
	if int(n) > len(rest) {
		return "", b, &kafkaerrors.Malformed{Reason: "string length exceeds buffer"}
	}
	return string(rest[:n]), rest[n:], nil
}

// PutBytes appends a Kafka BYTES: an int32 length followed by that many raw
// bytes. A nil or zero-length slice is collapsed to the NULL sentinel
// (length -1), same asymmetry as PutString.
func PutBytes(dst []byte, b []byte) []byte {
	if len(b) == 0 {
		return PutInt32(dst, -1)
	}
	dst = PutInt32(dst, int32(len(b)))
	return append(dst, b...)
}

// GetBytes reads a BYTES off the front of b. NULL (-1) decodes to nil.
func GetBytes(b []byte) ([]byte, []byte, error) {
	n, rest, err := GetInt32(b)
	if err != nil {
		return nil, b, err
	}
	if n == -1 {
		return nil, rest, nil
	}
	if int(n) > len(rest) {
		return nil, b, &kafkaerrors.Malformed{Reason: "bytes length exceeds buffer"}
	}
	return rest[:n], rest[n:], nil
}

// PutArray appends a Kafka ARRAY<T>: an int32 count followed by each
// element encoded with enc. A nil slice is NOT the same as an empty one on
// the wire for arrays (unlike STRING/BYTES): nil encodes as count -1,
// non-nil-but-empty encodes as count 0. Encode callers that only ever build
// non-nil slices never observe the distinction; GetArray always produces
// a non-nil (possibly empty) slice for count 0, and nil for count -1.
func PutArray[T any](dst []byte, xs []T, enc func([]byte, T) []byte) []byte {
	if xs == nil {
		return PutInt32(dst, -1)
	}
	dst = PutInt32(dst, int32(len(xs)))
	for _, x := range xs {
		dst = enc(dst, x)
	}
	return dst
}

// GetArray reads a Kafka ARRAY<T> off the front of b using dec to decode
// each element.
func GetArray[T any](b []byte, dec func([]byte) (T, []byte, error)) ([]T, []byte, error) {
	n, rest, err := GetInt32(b)
	if err != nil {
		return nil, b, err
	}
	if n == -1 {
		return nil, rest, nil
	}
	if n == 0 {
		return []T{}, rest, nil
	}
	xs := make([]T, 0, n)
	for i := int32(0); i < n; i++ {
		var x T
		x, rest, err = dec(rest)
		if err != nil {
			return nil, b, err
		}
		xs = append(xs, x)
	}
	return xs, rest, nil
}
