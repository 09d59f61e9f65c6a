package offsetmanager

import "time"

// Storage selects which backend the group coordinator persists offsets in,
// which in turn selects the OffsetCommit/OffsetFetch API version this
// manager speaks.
type Storage int

const (
	// StorageKafka (the default) uses OffsetCommit/OffsetFetch v1, with
	// the member/generation fencing tokens and the internal
	// __consumer_offsets topic.
	StorageKafka Storage = iota
	// StorageZookeeper uses OffsetCommit/OffsetFetch v0, the legacy path
	// where offsets live directly in ZooKeeper.
	StorageZookeeper
)

// Config holds the offset manager's tunables. The zero value is not
// useful; construct with DefaultConfig and override fields, or decode one
// from YAML (see cmd/offsetctl/cmd/config.go).
type Config struct {
	// AutoCommit batches commits in memory and flushes them on a timer
	// or once MaxBuffers distinct partitions are buffered. When false,
	// every Commit call issues a synchronous single-partition RPC.
	AutoCommit bool `yaml:"auto_commit"`
	// IntervalMs is how long a buffered commit waits before it is
	// flushed, absent an overflow flush.
	IntervalMs int `yaml:"interval_ms"`
	// MaxBuffers is the number of distinct buffered partitions that
	// triggers an immediate flush.
	MaxBuffers int `yaml:"max_buffers"`
	// Storage selects the wire version, see Storage.
	Storage Storage `yaml:"storage"`
}

// DefaultConfig returns the spec's documented defaults: auto_commit=true,
// interval_ms=500, max_buffers=50, storage=kafka.
func DefaultConfig() Config {
	return Config{
		AutoCommit: true,
		IntervalMs: 500,
		MaxBuffers: 50,
		Storage:    StorageKafka,
	}
}

func (c Config) interval() time.Duration {
	return time.Duration(c.IntervalMs) * time.Millisecond
}
