// Package FindCoordinator implements the v1 FindCoordinator request and
// response. This is not used by the offset manager itself (which receives
// an already-dialed coordinator connection per spec); it is used by the
// demo CLI (cmd/offsetctl) to locate the group coordinator before dialing
// it.
package FindCoordinator

import (
	"github.com/kafkaclient/gokafka/api"
)

const (
	CoordinatorGroup int8 = iota
	CoordinatorTransaction
)

func NewRequest(groupId string) *api.Request {
	return &api.Request{
		ApiKey:     api.FindCoordinator,
		ApiVersion: 1,
		Body: Request{
			Key:     groupId,
			KeyType: CoordinatorGroup,
		},
	}
}

type Request struct {
	Key     string // groupId
	KeyType int8
}
