// Package logging constructs the go-hclog logger shared by offsetmanager
// and cmd/offsetctl. The teacher library has no logging of its own; this
// follows the leveled, named-logger convention go-hclog's own consumers
// (hashicorp/raft, as pulled in transitively by the example pack) use.
package logging

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

// New returns a logger named name, writing to stderr at level (one of
// "trace", "debug", "info", "warn", "error").
func New(name, level string) hclog.Logger {
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		Level:           lvl,
		Output:          os.Stderr,
		IncludeLocation: false,
	})
}
