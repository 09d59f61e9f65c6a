package offsetmanager

import "github.com/pkg/errors"

// ErrUnknownPartition is returned synchronously, without touching the
// coordinator connection, when a caller names a partition outside
// [0, partitions).
var ErrUnknownPartition = errors.New("unknown partition")

// ErrStopped is returned by any operation issued after Stop has been
// called (or has completed).
var ErrStopped = errors.New("offset manager stopped")
