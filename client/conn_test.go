package client

import (
	"testing"
)

func TestDialBadBootstrapReturnsError(t *testing.T) {
	// nothing listens on this address; Dial must fail fast and return an
	// error rather than blocking past DialTimeout.
	old := DialTimeout
	DialTimeout = 0
	defer func() { DialTimeout = old }()
	if _, err := Dial("127.0.0.1:1", "test-client"); err == nil {
		t.Fatal("expected dial error")
	}
}

func TestConnCloseIsIdempotent(t *testing.T) {
	c := &Conn{}
	if err := c.Close(); err != nil {
		t.Fatalf("close on never-dialed conn: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestConnRequestOnClosedConnFails(t *testing.T) {
	c := &Conn{}
	if err := c.Request(nil, nil); err == nil {
		t.Fatal("expected error requesting on closed conn")
	}
}
