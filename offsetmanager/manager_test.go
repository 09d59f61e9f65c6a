package offsetmanager

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafkaclient/gokafka/api"
	"github.com/kafkaclient/gokafka/api/Offset"
	"github.com/kafkaclient/gokafka/api/OffsetCommit"
	"github.com/kafkaclient/gokafka/api/OffsetFetch"
	"github.com/kafkaclient/gokafka/kafkaerrors"
)

// fakeConn is an in-memory Connection: a type switch on the request body
// stands in for a broker, recording every OffsetCommit it sees and
// answering OffsetFetch/Offset from canned tables.
type fakeConn struct {
	mu sync.Mutex

	closed bool

	commits       []OffsetCommit.PartitionCommit
	commitBatches int
	commitErr     error

	committed      map[int32]OffsetFetch.PartitionResponse
	earliest       map[int32]int64
	earliestNoData map[int32]bool

	lastMemberID     string
	lastGenerationID int32
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		committed:      make(map[int32]OffsetFetch.PartitionResponse),
		earliest:       make(map[int32]int64),
		earliestNoData: make(map[int32]bool),
	}
}

func (f *fakeConn) Request(req *api.Request, v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch body := req.Body.(type) {
	case OffsetCommit.RequestV1:
		f.lastMemberID = body.ConsumerId
		f.lastGenerationID = body.GroupGenerationId
		return f.handleCommit(requestV1Commits(body), v)
	case OffsetCommit.RequestV0:
		return f.handleCommit(requestV0Commits(body), v)
	case OffsetFetch.Request:
		return f.handleFetch(body, v)
	case Offset.Request:
		return f.handleOffset(body, v)
	default:
		return nil
	}
}

func requestV1Commits(body OffsetCommit.RequestV1) []OffsetCommit.PartitionCommit {
	var out []OffsetCommit.PartitionCommit
	for _, t := range body.Topics {
		for _, p := range t.Partitions {
			out = append(out, OffsetCommit.PartitionCommit{Partition: p.PartitionIndex, Offset: p.CommittedOffset, Metadata: p.CommittedMetadata})
		}
	}
	return out
}

func requestV0Commits(body OffsetCommit.RequestV0) []OffsetCommit.PartitionCommit {
	var out []OffsetCommit.PartitionCommit
	for _, t := range body.Topics {
		for _, p := range t.Partitions {
			out = append(out, OffsetCommit.PartitionCommit{Partition: p.PartitionIndex, Offset: p.CommittedOffset, Metadata: p.CommittedMetadata})
		}
	}
	return out
}

func (f *fakeConn) handleCommit(commits []OffsetCommit.PartitionCommit, v interface{}) error {
	f.commitBatches++
	f.commits = append(f.commits, commits...)
	if f.commitErr != nil {
		return f.commitErr
	}
	resp := v.(*OffsetCommit.Response)
	partitions := make([]OffsetCommit.PartitionResponse, len(commits))
	for i, c := range commits {
		partitions[i] = OffsetCommit.PartitionResponse{PartitionIndex: c.Partition, ErrorCode: kafkaerrors.NONE}
		f.committed[c.Partition] = OffsetFetch.PartitionResponse{PartitionIndex: c.Partition, CommittedOffset: c.Offset, Metadata: c.Metadata, ErrorCode: kafkaerrors.NONE}
	}
	resp.Topics = []OffsetCommit.TopicResponse{{Name: "topic", Partitions: partitions}}
	return nil
}

func (f *fakeConn) handleFetch(body OffsetFetch.Request, v interface{}) error {
	resp := v.(*OffsetFetch.Response)
	var partitions []OffsetFetch.PartitionResponse
	for _, t := range body.Topics {
		for _, idx := range t.PartitionIndexes {
			p, ok := f.committed[idx]
			if !ok {
				p = OffsetFetch.PartitionResponse{PartitionIndex: idx, CommittedOffset: -1, ErrorCode: kafkaerrors.NONE}
			}
			partitions = append(partitions, p)
		}
	}
	resp.Topics = []OffsetFetch.TopicResponse{{Name: "topic", Partitions: partitions}}
	return nil
}

func (f *fakeConn) handleOffset(body Offset.Request, v interface{}) error {
	resp := v.(*Offset.Response)
	var partitions []Offset.PartitionResponse
	for _, t := range body.Topics {
		for _, p := range t.Partitions {
			if f.earliestNoData[p.Partition] {
				partitions = append(partitions, Offset.PartitionResponse{Partition: p.Partition, ErrorCode: kafkaerrors.NONE, Offsets: nil})
				continue
			}
			offset, ok := f.earliest[p.Partition]
			if !ok {
				partitions = append(partitions, Offset.PartitionResponse{Partition: p.Partition, ErrorCode: kafkaerrors.UNKNOWN_TOPIC_OR_PARTITION})
				continue
			}
			partitions = append(partitions, Offset.PartitionResponse{Partition: p.Partition, ErrorCode: kafkaerrors.NONE, Offsets: []int64{offset}})
		}
	}
	resp.Topics = []Offset.TopicResponse{{Topic: "topic", Partitions: partitions}}
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) batches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commitBatches
}

func (f *fakeConn) lastCommit(partition int32) (OffsetCommit.PartitionCommit, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var found OffsetCommit.PartitionCommit
	ok := false
	for _, c := range f.commits {
		if c.Partition == partition {
			found = c
			ok = true
		}
	}
	return found, ok
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.IntervalMs = 20
	cfg.MaxBuffers = 3
	return cfg
}

func TestCommitLastWriteWins(t *testing.T) {
	conn := newFakeConn()
	m := New(conn, "group", "topic", 4, testConfig(), nil, nil)
	defer m.Stop()

	require.NoError(t, m.Commit(0, 10, "a"))
	require.NoError(t, m.Commit(0, 20, "b"))
	require.NoError(t, m.Commit(0, 30, "c"))

	time.Sleep(100 * time.Millisecond)

	c, ok := conn.lastCommit(0)
	require.True(t, ok)
	assert.Equal(t, int64(30), c.Offset)
	assert.Equal(t, "c", c.Metadata)
	assert.Equal(t, 1, conn.batches())
}

func TestCommitOverflowFlushesImmediately(t *testing.T) {
	conn := newFakeConn()
	cfg := testConfig()
	cfg.IntervalMs = 10_000 // large enough that only overflow could trigger a flush in this test's window
	cfg.MaxBuffers = 2
	m := New(conn, "group", "topic", 4, cfg, nil, nil)
	defer m.Stop()

	require.NoError(t, m.Commit(0, 1, ""))
	require.NoError(t, m.Commit(1, 2, ""))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, conn.batches())
}

func TestCommitUnknownPartitionRejected(t *testing.T) {
	conn := newFakeConn()
	m := New(conn, "group", "topic", 2, testConfig(), nil, nil)
	defer m.Stop()

	err := m.Commit(5, 1, "")
	assert.ErrorIs(t, err, ErrUnknownPartition)
}

func TestCommitManualModeIsSynchronous(t *testing.T) {
	conn := newFakeConn()
	cfg := testConfig()
	cfg.AutoCommit = false
	m := New(conn, "group", "topic", 2, cfg, nil, nil)
	defer m.Stop()

	require.NoError(t, m.Commit(0, 42, "meta"))
	assert.Equal(t, 1, conn.batches())
	c, ok := conn.lastCommit(0)
	require.True(t, ok)
	assert.Equal(t, int64(42), c.Offset)
}

func TestFetchReturnsCommittedOffset(t *testing.T) {
	conn := newFakeConn()
	conn.committed[0] = OffsetFetch.PartitionResponse{PartitionIndex: 0, CommittedOffset: 77, Metadata: "m", ErrorCode: kafkaerrors.NONE}
	m := New(conn, "group", "topic", 2, testConfig(), nil, nil)
	defer m.Stop()

	offset, meta, err := m.Fetch(0, conn)
	require.NoError(t, err)
	assert.Equal(t, int64(77), offset)
	assert.Equal(t, "m", meta)
}

func TestFetchFallsBackToEarliestOffset(t *testing.T) {
	conn := newFakeConn()
	conn.earliest[0] = 5
	leader := newFakeConn()
	leader.earliest[0] = 5
	m := New(conn, "group", "topic", 2, testConfig(), nil, nil)
	defer m.Stop()

	offset, meta, err := m.Fetch(0, leader)
	require.NoError(t, err)
	assert.Equal(t, int64(5), offset)
	assert.Equal(t, "", meta)
}

func TestFetchFallbackWithEmptyOffsetsDefaultsToZero(t *testing.T) {
	conn := newFakeConn()
	leader := newFakeConn()
	leader.earliestNoData[0] = true
	m := New(conn, "group", "topic", 2, testConfig(), nil, nil)
	defer m.Stop()

	offset, meta, err := m.Fetch(0, leader)
	require.NoError(t, err)
	assert.Equal(t, int64(0), offset)
	assert.Equal(t, "", meta)
}

func TestFetchUnknownPartitionRejected(t *testing.T) {
	conn := newFakeConn()
	m := New(conn, "group", "topic", 2, testConfig(), nil, nil)
	defer m.Stop()

	_, _, err := m.Fetch(9, conn)
	assert.ErrorIs(t, err, ErrUnknownPartition)
}

func TestUpdateGenerationFencesFutureCommits(t *testing.T) {
	conn := newFakeConn()
	cfg := testConfig()
	cfg.AutoCommit = false
	m := New(conn, "group", "topic", 2, cfg, nil, nil)
	defer m.Stop()

	require.NoError(t, m.UpdateGeneration("member-1", 7))
	require.NoError(t, m.Commit(0, 1, ""))

	assert.Equal(t, "member-1", m.memberID)
	assert.Equal(t, int32(7), m.generationID)
	assert.Equal(t, "member-1", conn.lastMemberID)
	assert.Equal(t, int32(7), conn.lastGenerationID)
}

func TestStopFlushesPendingAndClosesConnection(t *testing.T) {
	conn := newFakeConn()
	m := New(conn, "group", "topic", 2, testConfig(), nil, nil)

	require.NoError(t, m.Commit(0, 1, ""))
	require.NoError(t, m.Stop())
	assert.True(t, conn.closed)
	assert.Equal(t, 1, conn.batches())
}

func TestManagerSurvivesTransportFailure(t *testing.T) {
	conn := newFakeConn()
	conn.commitErr = errors.New("broker unreachable")
	cfg := testConfig()
	cfg.AutoCommit = false
	m := New(conn, "group", "topic", 2, cfg, nil, nil)
	defer m.Stop()

	// a failed synchronous commit surfaces its error but leaves the actor
	// running: a later commit on the same manager still goes through once
	// the transport recovers.
	err := m.Commit(0, 1, "")
	require.Error(t, err)

	conn.commitErr = nil
	require.NoError(t, m.Commit(0, 2, ""))

	c, ok := conn.lastCommit(0)
	require.True(t, ok)
	assert.Equal(t, int64(2), c.Offset)
}
