package cluster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ant-labs/clusternode/internal/wire"
)

// Node B (empty) discovers node A (8 tasks, low CPU) via a heartbeat;
// one stealing tick then pulls tasks into B's queue while leaving A at
// or above MinQueueLength, with each stolen task's steal count bumped
// to 1.
func TestWorkStealing_EndToEndBetweenTwoNodes(t *testing.T) {
	cfg := DefaultConfig()
	client := newFakeClient()

	a := NewNode("a", []string{"a", "b"}, cfg, testLogger(), client, nil)
	b := NewNode("b", []string{"a", "b"}, cfg, testLogger(), client, nil)
	client.register(a)
	client.register(b)

	fillQueue(a, 8)
	a.cpuUtil = 10 // well under the 80.0 steal ceiling

	// B observes A via heartbeat.
	statusA := a.snapshotStatusLocked()
	_, err := b.Heartbeat(testCtx(t), &statusA)
	require.NoError(t, err)

	b.stealOnce(context.Background())

	bLen := b.QueueLength()
	assert.GreaterOrEqual(t, bLen, int32(1))
	assert.LessOrEqual(t, bLen, int32(3))
	assert.GreaterOrEqual(t, a.QueueLength(), cfg.MinQueueLength)

	b.mu.Lock()
	for _, tk := range b.queue.tasks {
		assert.Equal(t, int32(1), tk.StealCount)
	}
	b.mu.Unlock()
}

// Run must exit cleanly, with every loop stopped, once its context is
// canceled.
func TestNode_RunStopsOnCancel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WorkerPollInterval = time.Millisecond
	cfg.MetricsSampleInterval = time.Millisecond
	cfg.HeartbeatInterval = time.Millisecond
	cfg.ElectionInterval = time.Millisecond
	cfg.StealInterval = time.Millisecond

	n := newTestNode(t, cfg)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestHeartbeat_ReceiverOverwritesPeerView(t *testing.T) {
	n := newTestNode(t, DefaultConfig())
	first := wire.NodeStatus{NodeID: "p", Score: 1, QueueLength: 5}
	second := wire.NodeStatus{NodeID: "p", Score: 2, QueueLength: 1}

	_, err := n.Heartbeat(testCtx(t), &first)
	require.NoError(t, err)
	_, err = n.Heartbeat(testCtx(t), &second)
	require.NoError(t, err)

	view := n.PeerView()
	require.Contains(t, view, "p")
	assert.Equal(t, float32(2), view["p"].Score)
}

func TestTransferWork_BypassesAdmission(t *testing.T) {
	cfg := DefaultConfig()
	n := newTestNode(t, cfg)
	fillQueue(n, cfg.MaxQueueSize)

	ack, err := n.TransferWork(testCtx(t), &wire.Task{TaskID: 1})
	require.NoError(t, err)
	assert.True(t, ack.Success)
	assert.Equal(t, cfg.MaxQueueSize+1, n.QueueLength())
}
