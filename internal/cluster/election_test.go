package cluster

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/ant-labs/clusternode/internal/wire"
)

// The elected leader is the argmax of score over self plus all known
// peers, with ties won by self.
func TestElectOnce_PicksHighestScoringPeer(t *testing.T) {
	n := newTestNode(t, DefaultConfig())
	n.mu.Lock()
	// The idle local node scores 1.7, so both peers score above it.
	n.peers["b"] = wire.NodeStatus{NodeID: "b", Score: 1.8}
	n.peers["c"] = wire.NodeStatus{NodeID: "c", Score: 1.9}
	n.mu.Unlock()

	n.electOnce()

	leaderID, isLeader := n.LeaderOpinion()
	assert.Equal(t, "c", leaderID)
	assert.False(t, isLeader)
}

func TestElectOnce_SelfTieWins(t *testing.T) {
	n := newTestNode(t, DefaultConfig())
	// Local score with empty queue/zero utilization per computeScore.
	local := computeScore(n.cfg, 0, 0, 0)
	n.mu.Lock()
	n.peers["b"] = wire.NodeStatus{NodeID: "b", Score: float32(local)}
	n.mu.Unlock()

	n.electOnce()

	leaderID, isLeader := n.LeaderOpinion()
	assert.Equal(t, n.id, leaderID)
	assert.True(t, isLeader)
}

// Three nodes with fixed synthetic scores exchange heartbeats; all
// three converge on the same leader, and only that node believes
// itself the leader.
func TestElection_ThreeNodeConvergence(t *testing.T) {
	client := newFakeClient()
	cfg := DefaultConfig()

	a := NewNode("a", []string{"a", "b", "c"}, cfg, zerolog.Nop(), client, nil)
	b := NewNode("b", []string{"a", "b", "c"}, cfg, zerolog.Nop(), client, nil)
	c := NewNode("c", []string{"a", "b", "c"}, cfg, zerolog.Nop(), client, nil)
	client.register(a)
	client.register(b)
	client.register(c)

	// Hold metrics constant so scores cannot flap between ticks.
	a.cpuUtil, a.memUtil = 0, 0   // highest score
	b.cpuUtil, b.memUtil = 40, 40 // middle
	c.cpuUtil, c.memUtil = 90, 90 // lowest

	ctx := testCtx(t)
	statusA := a.snapshotStatusLocked()
	statusB := b.snapshotStatusLocked()
	statusC := c.snapshotStatusLocked()

	for _, n := range []*Node{a, b, c} {
		_, _ = n.Heartbeat(ctx, &statusA)
		_, _ = n.Heartbeat(ctx, &statusB)
		_, _ = n.Heartbeat(ctx, &statusC)
	}

	a.electOnce()
	b.electOnce()
	c.electOnce()

	for _, n := range []*Node{a, b, c} {
		leaderID, isLeader := n.LeaderOpinion()
		assert.Equal(t, "a", leaderID)
		assert.Equal(t, n.id == "a", isLeader)
	}
}

// If heartbeats cease, the peer view is untouched by the election loop
// and the leader opinion freezes relative to last-known scores.
func TestElection_FreezesWithoutHeartbeats(t *testing.T) {
	n := newTestNode(t, DefaultConfig())
	n.mu.Lock()
	n.peers["b"] = wire.NodeStatus{NodeID: "b", Score: 5}
	n.mu.Unlock()

	n.electOnce()
	before := n.PeerView()

	n.electOnce()
	n.electOnce()
	after := n.PeerView()

	assert.Equal(t, before, after)
	leaderID, _ := n.LeaderOpinion()
	assert.Equal(t, "b", leaderID)
}
