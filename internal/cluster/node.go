// Package cluster implements the node's distributed coordination
// engine: the task queue and worker, the heartbeat exchange, the
// score-based election loop, the admission-and-overflow policy, and
// the pull-based work-stealing protocol. Every periodic activity is a
// plain function of a context.Context wired together by Node.Run via
// an errgroup.Group, so each loop stops cleanly on cancellation
// instead of running as a detached, un-joinable goroutine.
package cluster

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ant-labs/clusternode/internal/obs"
	"github.com/ant-labs/clusternode/internal/wire"
)

// Node is a single cluster member. All of its shared mutable state —
// the task queue, the peer view, the leader opinion, and the locally
// sampled metrics — is protected by the single mutex mu, deliberately
// coarse: critical sections are short, the
// number of contending goroutines is small and fixed, and several
// operations (e.g. computeScore) need a consistent view across more
// than one field at once.
type Node struct {
	id   string
	cfg  Config
	log  zerolog.Logger
	metr *obs.Metrics

	client    Client
	peerAddrs []string

	rng *rand.Rand // metrics-sampler RNG; not touched outside that loop

	mu       sync.Mutex
	queue    taskQueue
	peers    map[string]wire.NodeStatus
	leaderID string
	isLeader bool
	cpuUtil  float64
	memUtil  float64
}

// NewNode constructs a Node identified by id, with the given static
// peer set (loaded once from the peers file at startup); id itself is
// excluded from the outbound peer list.
func NewNode(id string, peerAddrs []string, cfg Config, log zerolog.Logger, client Client, metr *obs.Metrics) *Node {
	others := make([]string, 0, len(peerAddrs))
	for _, p := range peerAddrs {
		if p != id {
			others = append(others, p)
		}
	}
	return &Node{
		id:        id,
		cfg:       cfg,
		log:       log.With().Str("node_id", id).Logger(),
		metr:      metr,
		client:    client,
		peerAddrs: others,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		queue:     newTaskQueue(cfg.MaxQueueSize),
		peers:     make(map[string]wire.NodeStatus),
		leaderID:  id,
		isLeader:  true,
	}
}

// ID returns the node's address/identity string.
func (n *Node) ID() string { return n.id }

// Run launches the Worker, Metrics Sampler, Heartbeat Sender, Election
// Loop, and Work-Stealing Initiator as an errgroup, returning when ctx
// is canceled and every loop has exited (or the first one returns a
// non-nil error, which cancels the rest via the group's derived
// context).
func (n *Node) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return n.runWorker(gctx) })
	g.Go(func() error { return n.runMetricsSampler(gctx) })
	g.Go(func() error { return n.runHeartbeatSender(gctx) })
	g.Go(func() error { return n.runElection(gctx) })
	g.Go(func() error { return n.runWorkStealing(gctx) })
	return g.Wait()
}

// snapshotStatusLocked builds the NodeStatus this node would broadcast
// right now. Callers must hold mu.
func (n *Node) snapshotStatusLocked() wire.NodeStatus {
	score := computeScore(n.cfg, n.queue.len(), n.cpuUtil, n.memUtil)
	return wire.NodeStatus{
		NodeID:            n.id,
		Score:             float32(score),
		QueueLength:       n.queue.len(),
		CPUUtilization:    float32(n.cpuUtil),
		MemoryUtilization: float32(n.memUtil),
		LastHeartbeatTime: time.Now(),
		IsLeader:          n.isLeader,
	}
}

// QueueLength reports the current queue length (for tests/diagnostics).
func (n *Node) QueueLength() int32 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.queue.len()
}

// LeaderOpinion reports the node's current (leader_id, is_self) belief.
func (n *Node) LeaderOpinion() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.leaderID, n.isLeader
}

// PeerView returns a shallow copy of the current peer view snapshot.
func (n *Node) PeerView() map[string]wire.NodeStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make(map[string]wire.NodeStatus, len(n.peers))
	for k, v := range n.peers {
		out[k] = v
	}
	return out
}

// sleepCtx sleeps for d or returns ctx.Err() if ctx is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
