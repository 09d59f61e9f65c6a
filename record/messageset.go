package record

// MessageSet is the concatenation framing Kafka uses for a sequence of
// Messages: there is no outer length, each Message carries its own size.
type MessageSet []*Message

// Encode concatenates the Encode of every message in order.
func Encode(ms MessageSet) []byte {
	var b []byte
	for _, m := range ms {
		b = append(b, m.Encode()...)
	}
	return b
}

// DecodeMessageSet decodes messages off the front of b in wire order,
// stopping cleanly (without error) the first time the remaining bytes are
// too short to hold the next record's declared size. This makes decoding
// tolerant of the tail truncation Kafka brokers perform when a Fetch
// response hits its byte limit mid-record. If strict is true, every
// decoded message's CRC is verified.
func DecodeMessageSet(b []byte, strict bool) (MessageSet, error) {
	var ms MessageSet
	for len(b) > 0 {
		m, rest, err := Decode(b, strict)
		if err != nil {
			return ms, err
		}
		if m == nil {
			break // truncated tail: stop cleanly
		}
		ms = append(ms, m)
		b = rest
	}
	return ms, nil
}
