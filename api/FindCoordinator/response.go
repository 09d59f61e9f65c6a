package FindCoordinator

import (
	"net"
	"strconv"
)

type Response struct {
	ThrottleTimeMs int32
	ErrorCode      int16
	ErrorMessage   string
	NodeId         int32
	Host           string
	Port           int32
}

// Addr returns the coordinator's host:port, ready to dial.
func (r *Response) Addr() string {
	return net.JoinHostPort(r.Host, strconv.Itoa(int(r.Port)))
}
