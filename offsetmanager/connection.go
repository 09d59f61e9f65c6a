package offsetmanager

import "github.com/kafkaclient/gokafka/api"

// Connection is the capability the offset manager needs from a transport:
// a synchronous send-and-receive with the response already decoded into
// v, and an idempotent close. client.Conn is the concrete TCP
// implementation; tests use an in-memory fake.
type Connection interface {
	Request(req *api.Request, v interface{}) error
	Close() error
}
