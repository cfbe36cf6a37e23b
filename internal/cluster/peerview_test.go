package cluster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ant-labs/clusternode/internal/wire"
)

func TestEvictStalerThan(t *testing.T) {
	n := newTestNode(t, DefaultConfig())
	now := time.Now()
	n.mu.Lock()
	n.peers["fresh"] = wire.NodeStatus{NodeID: "fresh", LastHeartbeatTime: now}
	n.peers["stale"] = wire.NodeStatus{NodeID: "stale", LastHeartbeatTime: now.Add(-time.Minute)}
	n.mu.Unlock()

	evicted := n.EvictStalerThan(10 * time.Second)
	assert.Equal(t, 1, evicted)

	view := n.PeerView()
	assert.Contains(t, view, "fresh")
	assert.NotContains(t, view, "stale")
}

func TestEvictStalerThan_NothingStale(t *testing.T) {
	n := newTestNode(t, DefaultConfig())
	n.mu.Lock()
	n.peers["p"] = wire.NodeStatus{NodeID: "p", LastHeartbeatTime: time.Now()}
	n.mu.Unlock()

	assert.Equal(t, 0, n.EvictStalerThan(time.Minute))
	assert.Len(t, n.PeerView(), 1)
}
