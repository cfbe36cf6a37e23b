package cluster

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ant-labs/clusternode/internal/wire"
)

// AssignTask is the admission-and-overflow handler. When the queue has
// room it pushes and acks immediately. Otherwise, if StealOnOverflow is
// set (the default), it makes one eager pass through the work-stealing
// routine before re-checking size. Stealing pulls tasks inward, so the
// pass cannot make room for the new task; it is kept as a best-effort
// probe and can be turned off, in which case overflow admits or rejects
// on current queue size alone.
func (n *Node) AssignTask(ctx context.Context, task *wire.Task) (*wire.Ack, error) {
	n.mu.Lock()
	if !n.queue.full() {
		n.queue.pushBack(*task)
		n.mu.Unlock()
		n.metr.IncTasksAdmitted()
		return &wire.Ack{Message: "Task assigned successfully", Success: true}, nil
	}
	n.mu.Unlock()

	if n.cfg.StealOnOverflow {
		n.tryStealOnOverflow(ctx)
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.queue.full() {
		n.metr.IncTasksRejected()
		return nil, status.Error(codes.ResourceExhausted, "Queue full, task rejected")
	}
	n.queue.pushBack(*task)
	n.metr.IncTasksAdmitted()
	return &wire.Ack{Message: "Task assigned successfully", Success: true}, nil
}

// tryStealOnOverflow is the admission-path steal probe. Unlike
// runWorkStealing it does not gate on the local queue being underfull,
// so it may legitimately find no eligible donor and do nothing.
func (n *Node) tryStealOnOverflow(ctx context.Context) {
	n.mu.Lock()
	localQueueLength := n.queue.len()
	localAvgStealCount := n.queue.avgStealCount()
	candidates := make([]wire.NodeStatus, 0, len(n.peers))
	for _, peerStatus := range n.peers {
		candidates = append(candidates, peerStatus)
	}
	n.mu.Unlock()

	for _, peer := range candidates {
		if !shouldStealWork(n.cfg, localQueueLength, localAvgStealCount, peer) {
			continue
		}
		n.stealFrom(ctx, peer.NodeID)
		return
	}
}
