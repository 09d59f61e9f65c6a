package record

import (
	"bytes"
	"testing"
)

func TestEncodeMessageValueOnly(t *testing.T) {
	m := New(nil, []byte("hey"))
	got := m.Encode()
	want := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // offset 0
		0x00, 0x00, 0x00, 0x11, // size 17
		0xFE, 0x2E, 0x6B, 0x9D, // crc
		0x00, // magic
		0x00, // attributes
		0xFF, 0xFF, 0xFF, 0xFF, // key NULL
		0x00, 0x00, 0x00, 0x03, 'h', 'e', 'y', // value "hey"
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got  %x\nwant %x", got, want)
	}
}

func TestEncodeMessageKeyAndValue(t *testing.T) {
	m := New([]byte("key"), []byte("hey"))
	got := m.Encode()
	want := []byte{
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // offset 0
		0x00, 0x00, 0x00, 0x14, // size 20
		0x9C, 0x97, 0xFF, 0x8F, // crc
		0x00, // magic
		0x00, // attributes
		0x00, 0x00, 0x00, 0x03, 'k', 'e', 'y', // key "key"
		0x00, 0x00, 0x00, 0x03, 'h', 'e', 'y', // value "hey"
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got  %x\nwant %x", got, want)
	}
}

func TestMessageCRCRoundTrip(t *testing.T) {
	msgs := []*Message{
		New(nil, []byte("hey")),
		New([]byte("key"), []byte("hey")),
		New([]byte("foo"), nil),
		New(nil, nil),
	}
	for _, m := range msgs {
		b := m.Encode()
		got, rest, err := Decode(b, true)
		if err != nil {
			t.Fatal(err)
		}
		if len(rest) != 0 {
			t.Fatalf("leftover bytes: %x", rest)
		}
		if got.Offset != m.Offset || got.MagicByte != m.MagicByte ||
			got.Attributes != m.Attributes ||
			!bytes.Equal(got.Key, m.Key) || !bytes.Equal(got.Value, m.Value) {
			t.Fatalf("got %+v, want %+v", got, m)
		}
	}
}

func TestDecodeRejectsBadCRCInStrictMode(t *testing.T) {
	m := New(nil, []byte("hey"))
	b := m.Encode()
	b[12] ^= 0xFF // flip a byte inside the CRC field
	if _, _, err := Decode(b, true); err == nil {
		t.Fatal("expected crc mismatch error")
	}
	// non-strict mode must not reject it
	if _, _, err := Decode(b, false); err != nil {
		t.Fatalf("non-strict decode should not verify crc: %v", err)
	}
}

func TestMessageSetTruncationTolerance(t *testing.T) {
	ms := MessageSet{
		New([]byte("k1"), []byte("v1")),
		New([]byte("k2"), []byte("v2")),
		New([]byte("k3"), []byte("v3")),
	}
	full := Encode(ms)
	// strictly truncate the last record by cutting off its final byte.
	truncated := full[:len(full)-1]
	got, err := DecodeMessageSet(truncated, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(ms)-1 {
		t.Fatalf("got %d messages, want %d", len(got), len(ms)-1)
	}
	for i, m := range got {
		if !bytes.Equal(m.Value, ms[i].Value) {
			t.Fatalf("message %d: got %q, want %q", i, m.Value, ms[i].Value)
		}
	}
}

func TestMessageSetEmpty(t *testing.T) {
	got, err := DecodeMessageSet(nil, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d messages, want 0", len(got))
	}
}
