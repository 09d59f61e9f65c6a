package client

import (
	"github.com/pkg/errors"

	"github.com/kafkaclient/gokafka/api"
	"github.com/kafkaclient/gokafka/api/FindCoordinator"
	"github.com/kafkaclient/gokafka/api/Metadata"
	"github.com/kafkaclient/gokafka/kafkaerrors"
)

func call(c *Conn, req *api.Request, v interface{}) error {
	return c.Request(req, v)
}

// DialCoordinator connects to bootstrap, asks it for the group coordinator
// of groupId, and returns a new Conn dialed directly to that coordinator.
// The bootstrap connection is closed before returning.
func DialCoordinator(bootstrap, clientId, groupId string) (*Conn, error) {
	boot, err := Dial(bootstrap, clientId)
	if err != nil {
		return nil, err
	}
	defer boot.Close()

	req := FindCoordinator.NewRequest(groupId)
	resp := &FindCoordinator.Response{}
	if err := call(boot, req, resp); err != nil {
		return nil, errors.Wrap(err, "error finding group coordinator")
	}
	if resp.ErrorCode != kafkaerrors.NONE {
		return nil, &kafkaerrors.Error{Code: resp.ErrorCode}
	}
	return Dial(resp.Addr(), clientId)
}

// DialPartitionLeader connects to bootstrap, looks up metadata for topic,
// and returns a new Conn dialed directly to the leader broker of
// partition. Used only to obtain the leader connection the offset
// manager's earliest-offset fallback borrows for a single Offset RPC.
func DialPartitionLeader(bootstrap, clientId, topic string, partition int32) (*Conn, error) {
	boot, err := Dial(bootstrap, clientId)
	if err != nil {
		return nil, err
	}
	defer boot.Close()

	req := Metadata.NewRequest([]string{topic})
	resp := &Metadata.Response{}
	if err := call(boot, req, resp); err != nil {
		return nil, errors.Wrap(err, "error fetching metadata")
	}
	leaders := resp.Leaders(topic)
	leader, ok := leaders[partition]
	if !ok {
		return nil, errors.Errorf("no leader known for %s/%d", topic, partition)
	}
	return Dial(leader.Addr(), clientId)
}
