// Package offsetmanager implements the consumer offset manager: a
// single-threaded actor that batches CommitOffset requests, fetches
// committed offsets with an earliest-offset fallback, and is fenced by a
// member-id/generation-id pair supplied by group membership logic that
// lives outside this package. It speaks to the group coordinator through a
// Connection handed to it at construction, and borrows a partition-leader
// Connection per Fetch call for the fallback path.
//
// The design is grounded on the mainLoop/command-channel actor shown in
// IBM-sarama's consumer group coordinator: one goroutine owns all mutable
// state, callers never touch it directly, and every operation is a
// round-trip over a channel with its own reply channel.
package offsetmanager

import (
	"time"

	"github.com/armon/go-metrics"
	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"

	"github.com/kafkaclient/gokafka/api"
	"github.com/kafkaclient/gokafka/api/Offset"
	"github.com/kafkaclient/gokafka/api/OffsetCommit"
	"github.com/kafkaclient/gokafka/api/OffsetFetch"
	"github.com/kafkaclient/gokafka/kafkaerrors"
)

type pendingEntry struct {
	offset   int64
	metadata string
}

type commitCmd struct {
	partition int32
	offset    int64
	metadata  string
	reply     chan error
}

type fetchCmd struct {
	partition int32
	leader    Connection
	reply     chan fetchResult
}

type fetchResult struct {
	offset   int64
	metadata string
	err      error
}

type updateGenCmd struct {
	memberID     string
	generationID int32
	reply        chan struct{}
}

type stopCmd struct {
	reply chan struct{}
}

// state names the actor's current activity for logging/metrics only; it
// has no effect on which channel operations are legal next — that falls
// out of the select statement in run(), not out of this field.
type state string

const (
	stateIdle     state = "idle"
	stateFlushing state = "flushing"
	stateStopped  state = "stopped"
)

// Manager is a running offset manager for one group/topic. All exported
// methods are safe for concurrent use; they hand work to the single actor
// goroutine and block for its reply.
type Manager struct {
	group      string
	topic      string
	partitions int32
	config     Config
	logger     hclog.Logger
	metrics    *metrics.Metrics
	state      state

	coordinator  Connection
	memberID     string
	generationID int32

	pending map[int32]pendingEntry
	timer   *time.Timer

	cmds chan interface{}
	done chan struct{}
}

// New starts an offset manager for group/topic, which has the given number
// of partitions (0..partitions-1 are valid), committing through
// coordinator. The manager owns coordinator and closes it on Stop. sink may
// be nil, in which case metrics emission is a no-op.
func New(coordinator Connection, group, topic string, partitions int32, cfg Config, logger hclog.Logger, sink *metrics.Metrics) *Manager {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	m := &Manager{
		group:        group,
		topic:        topic,
		partitions:   partitions,
		config:       cfg,
		logger:       logger.Named("offsetmanager").With("group", group, "topic", topic),
		metrics:      sink,
		state:        stateIdle,
		coordinator:  coordinator,
		generationID: -1,
		pending:      make(map[int32]pendingEntry),
		cmds:         make(chan interface{}),
		done:         make(chan struct{}),
	}
	go m.run()
	return m
}

func (m *Manager) incrCounter(key []string, val float32) {
	if m.metrics == nil {
		return
	}
	m.metrics.IncrCounter(key, val)
}

// Commit records offset/metadata for partition. With AutoCommit enabled
// (the default) this buffers the write and returns once it is durably
// queued in memory, not once it reaches the broker; a later write for the
// same partition before the next flush silently replaces it
// (last-write-wins). With AutoCommit disabled, Commit blocks for a
// synchronous single-partition round trip.
func (m *Manager) Commit(partition int32, offset int64, metadata string) error {
	reply := make(chan error, 1)
	select {
	case m.cmds <- commitCmd{partition: partition, offset: offset, metadata: metadata, reply: reply}:
	case <-m.done:
		return ErrStopped
	}
	return <-reply
}

// Fetch returns the last committed offset for partition. If the
// coordinator reports no committed offset (offset -1 with no error, or
// UNKNOWN_TOPIC_OR_PARTITION), Fetch falls back to asking leader for the
// partition's earliest offset. leader is borrowed only for the duration of
// this call; the manager never closes it.
func (m *Manager) Fetch(partition int32, leader Connection) (int64, string, error) {
	reply := make(chan fetchResult, 1)
	select {
	case m.cmds <- fetchCmd{partition: partition, leader: leader, reply: reply}:
	case <-m.done:
		return 0, "", ErrStopped
	}
	r := <-reply
	return r.offset, r.metadata, r.err
}

// UpdateGeneration installs a new member-id/generation-id fencing pair.
// Commits issued after this call (Kafka storage only) carry the new
// tokens; a stale pair rejected by the broker as ILLEGAL_GENERATION or
// UNKNOWN_MEMBER_ID is surfaced from a synchronous Commit (AutoCommit
// disabled) or logged by a buffered flush, not from this call.
func (m *Manager) UpdateGeneration(memberID string, generationID int32) error {
	reply := make(chan struct{}, 1)
	select {
	case m.cmds <- updateGenCmd{memberID: memberID, generationID: generationID, reply: reply}:
	case <-m.done:
		return ErrStopped
	}
	<-reply
	return nil
}

// Stop flushes any buffered commits, closes the coordinator connection,
// and terminates the actor goroutine. Stop is idempotent.
func (m *Manager) Stop() error {
	reply := make(chan struct{}, 1)
	select {
	case m.cmds <- stopCmd{reply: reply}:
		<-reply
	case <-m.done:
	}
	return nil
}

func (m *Manager) timerC() <-chan time.Time {
	if m.timer == nil {
		return nil
	}
	return m.timer.C
}

func (m *Manager) run() {
	defer close(m.done)
	for {
		select {
		case cmd := <-m.cmds:
			switch c := cmd.(type) {
			case commitCmd:
				c.reply <- m.handleCommit(c.partition, c.offset, c.metadata)
			case fetchCmd:
				c.reply <- m.handleFetch(c.partition, c.leader)
			case updateGenCmd:
				m.memberID = c.memberID
				m.generationID = c.generationID
				close(c.reply)
			case stopCmd:
				m.state = stateFlushing
				m.flush()
				m.state = stateStopped
				m.coordinator.Close()
				close(c.reply)
				return
			}
		case <-m.timerC():
			m.timer = nil
			m.state = stateFlushing
			m.flush()
			m.state = stateIdle
		}
	}
}

func (m *Manager) validPartition(partition int32) bool {
	return partition >= 0 && partition < m.partitions
}

func (m *Manager) handleCommit(partition int32, offset int64, metadata string) error {
	if !m.validPartition(partition) {
		return ErrUnknownPartition
	}

	if !m.config.AutoCommit {
		return m.commitSync([]OffsetCommit.PartitionCommit{
			{Partition: partition, Offset: offset, Metadata: metadata},
		})
	}

	m.pending[partition] = pendingEntry{offset: offset, metadata: metadata}

	if len(m.pending) >= m.config.MaxBuffers {
		if m.timer != nil {
			m.timer.Stop()
		}
		m.timer = time.NewTimer(0)
		return nil
	}

	if m.timer == nil {
		m.timer = time.NewTimer(m.config.interval())
	}
	return nil
}

// flush commits every buffered partition and clears the buffer before
// issuing the RPC. Swapping the map out first means a Commit that arrives
// while the round trip is in flight starts a fresh buffer for the next
// cycle instead of racing the one already on the wire.
func (m *Manager) flush() {
	if len(m.pending) == 0 {
		return
	}
	batch := m.pending
	m.pending = make(map[int32]pendingEntry)

	commits := make([]OffsetCommit.PartitionCommit, 0, len(batch))
	for partition, entry := range batch {
		commits = append(commits, OffsetCommit.PartitionCommit{
			Partition: partition,
			Offset:    entry.offset,
			Metadata:  entry.metadata,
		})
	}

	if err := m.commitSync(commits); err != nil {
		m.incrCounter([]string{"offsetmanager", "commit", "error"}, 1)
		m.logger.Error("commit flush failed", "state", m.state, "partitions", len(commits), "error", err)
		return
	}
	m.incrCounter([]string{"offsetmanager", "commit", "flush"}, float32(len(commits)))
}

func (m *Manager) commitSync(commits []OffsetCommit.PartitionCommit) error {
	var req *api.Request
	if m.config.Storage == StorageZookeeper {
		req = OffsetCommit.NewRequestV0(m.group, m.topic, commits)
	} else {
		req = OffsetCommit.NewRequestV1(m.group, m.generationID, m.memberID, m.topic, commits)
	}

	resp := &OffsetCommit.Response{}
	if err := m.coordinator.Request(req, resp); err != nil {
		return errors.Wrap(err, "error committing offsets")
	}

	for _, c := range commits {
		p := resp.Partition(m.topic, c.Partition)
		if p == nil {
			continue
		}
		if p.ErrorCode != kafkaerrors.NONE {
			return &kafkaerrors.Error{Code: p.ErrorCode}
		}
	}
	return nil
}

func (m *Manager) handleFetch(partition int32, leader Connection) fetchResult {
	if !m.validPartition(partition) {
		return fetchResult{err: ErrUnknownPartition}
	}

	version := int16(1)
	if m.config.Storage == StorageZookeeper {
		version = 0
	}

	req := OffsetFetch.NewRequest(m.group, m.topic, partition, version)
	resp := &OffsetFetch.Response{}
	if err := m.coordinator.Request(req, resp); err != nil {
		return fetchResult{err: errors.Wrap(err, "error fetching committed offset")}
	}

	p := resp.Partition(m.topic, partition)
	if p == nil {
		return fetchResult{err: errors.New("offset fetch response missing partition")}
	}

	switch {
	case p.ErrorCode == kafkaerrors.NONE && p.CommittedOffset != -1:
		return fetchResult{offset: p.CommittedOffset, metadata: p.Metadata}
	case p.ErrorCode == kafkaerrors.NONE, p.ErrorCode == kafkaerrors.UNKNOWN_TOPIC_OR_PARTITION:
		m.incrCounter([]string{"offsetmanager", "fetch", "fallback"}, 1)
		return m.fetchEarliest(partition, leader)
	default:
		return fetchResult{err: &kafkaerrors.Error{Code: p.ErrorCode}}
	}
}

func (m *Manager) fetchEarliest(partition int32, leader Connection) fetchResult {
	req := Offset.NewRequest(m.topic, partition, Offset.Earliest, 1)
	resp := &Offset.Response{}
	if err := leader.Request(req, resp); err != nil {
		return fetchResult{err: errors.Wrap(err, "error fetching earliest offset")}
	}

	p := resp.Partition(m.topic, partition)
	if p == nil {
		return fetchResult{err: errors.New("offset response missing partition")}
	}
	if p.ErrorCode != kafkaerrors.NONE {
		return fetchResult{err: &kafkaerrors.Error{Code: p.ErrorCode}}
	}
	if len(p.Offsets) == 0 {
		return fetchResult{offset: 0, metadata: ""}
	}
	return fetchResult{offset: p.Offsets[0], metadata: ""}
}
