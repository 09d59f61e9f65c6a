// Package client implements the concrete connection adapter the offset
// manager is handed: a persistent, synchronous TCP connection to a single
// Kafka broker, plus the thin discovery helpers (FindCoordinator,
// Metadata) used to obtain one. Cluster metadata discovery, connection
// pooling, and consumer group membership proper are out of scope for this
// repository; this package only goes as far as producing the two
// connections the offset manager's contract requires: a coordinator
// connection and (for the earliest-offset fallback) a leader connection.
package client

import (
	"bufio"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/kafkaclient/gokafka/api"
)

// DialTimeout bounds how long dialing a broker may take.
var DialTimeout = 10 * time.Second

// Conn is a persistent, synchronous connection to one Kafka broker. It
// implements offsetmanager.Connection. All calls are serialized by an
// internal mutex: Conn is safe for concurrent use, but concurrent callers
// queue rather than pipeline, matching the synchronous request/response
// contract the rest of this client relies on.
type Conn struct {
	ClientId string

	mu            sync.Mutex
	conn          net.Conn
	correlationId int32
}

// Dial opens a connection to addr ("host:port").
func Dial(addr, clientId string) (*Conn, error) {
	nc, err := net.DialTimeout("tcp", addr, DialTimeout)
	if err != nil {
		return nil, errors.Wrapf(err, "error dialing %s", addr)
	}
	return &Conn{ClientId: clientId, conn: nc}, nil
}

// Request sends req and unmarshals the response body into v. It satisfies
// offsetmanager.Connection.
func (c *Conn) Request(req *api.Request, v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return errors.New("connection is closed")
	}
	req.ClientId = c.ClientId
	req.CorrelationId = atomic.AddInt32(&c.correlationId, 1)

	w := bufio.NewWriter(c.conn)
	if _, err := w.Write(req.Bytes()); err != nil {
		return errors.Wrapf(err, "error sending %T request", req.Body)
	}
	if err := w.Flush(); err != nil {
		return errors.Wrapf(err, "error flushing %T request", req.Body)
	}
	resp, err := api.Read(bufio.NewReader(c.conn))
	if err != nil {
		return errors.Wrapf(err, "error reading %T response", req.Body)
	}
	if got := resp.CorrelationId(); got != req.CorrelationId {
		return errors.Errorf("correlation id mismatch: sent %d, got %d", req.CorrelationId, got)
	}
	if err := resp.Unmarshal(v); err != nil {
		return errors.Wrapf(err, "error unmarshaling %T response", req.Body)
	}
	return nil
}

// Close is idempotent: closing an already-closed or nil-backed Conn is a
// no-op.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Conn) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return "<closed>"
	}
	return fmt.Sprintf("conn(%s -> %s)", c.conn.LocalAddr(), c.conn.RemoteAddr())
}
