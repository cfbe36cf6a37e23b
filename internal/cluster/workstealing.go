package cluster

import (
	"context"

	"github.com/ant-labs/clusternode/internal/wire"
)

// cpuStealCeiling is the ceiling on a donor's reported CPU
// utilization: a peer at or above it is never stolen from.
const cpuStealCeiling = 80.0

// shouldStealWork decides whether the initiator should issue a
// RequestWork to peer. It is a pure function over the initiator's own
// queue state (localQueueLength, localAvgStealCount) and the peer's
// last-known status, so it can be unit-tested directly without any
// locking or RPC machinery.
func shouldStealWork(cfg Config, localQueueLength int32, localAvgStealCount float64, peer wire.NodeStatus) bool {
	if peer.QueueLength <= cfg.MinQueueLength {
		return false
	}
	if localQueueLength >= cfg.MaxQueueSize {
		return false
	}
	if peer.QueueLength-localQueueLength <= 1 {
		return false
	}
	if float64(peer.CPUUtilization) >= cpuStealCeiling {
		return false
	}
	if localAvgStealCount >= float64(cfg.MaxStealCount) {
		return false
	}
	return true
}

// runWorkStealing is the pull-based rebalancing initiator, ticking
// every StealInterval. When the local queue is already above
// MinQueueLength it skips the tick entirely; otherwise it scans the
// peer view for candidate donors and issues RequestWork.
func (n *Node) runWorkStealing(ctx context.Context) error {
	for {
		n.stealOnce(ctx)

		if err := sleepCtx(ctx, n.cfg.StealInterval); err != nil {
			return err
		}
	}
}

func (n *Node) stealOnce(ctx context.Context) {
	n.mu.Lock()
	localQueueLength := n.queue.len()
	skip := localQueueLength > n.cfg.MinQueueLength
	var candidates []wire.NodeStatus
	var localAvgStealCount float64
	if !skip {
		localAvgStealCount = n.queue.avgStealCount()
		candidates = make([]wire.NodeStatus, 0, len(n.peers))
		for _, status := range n.peers {
			candidates = append(candidates, status)
		}
	}
	n.mu.Unlock()

	if skip {
		return
	}

	for _, peer := range candidates {
		if !shouldStealWork(n.cfg, localQueueLength, localAvgStealCount, peer) {
			continue
		}
		n.stealFrom(ctx, peer.NodeID)
		// Re-read the local queue length for the next candidate so a
		// successful steal doesn't over-pull from several donors in
		// the same tick once this node is no longer underfull.
		n.mu.Lock()
		localQueueLength = n.queue.len()
		localAvgStealCount = n.queue.avgStealCount()
		n.mu.Unlock()
		if localQueueLength > n.cfg.MinQueueLength {
			return
		}
	}
}

// stealFrom issues one RequestWork RPC against addr and, on success,
// pushes the returned tasks onto the local queue under mu, in order,
// until the queue is full; returned tasks that do not fit are not
// enqueued. Tasks retain the steal count the donor assigned them.
func (n *Node) stealFrom(ctx context.Context, addr string) {
	reqCtx, cancel := context.WithTimeout(ctx, n.cfg.StealTimeout)
	defer cancel()

	req := wire.WorkRequest{
		RequesterID:   n.id,
		MaxTasks:      n.cfg.MaxTasksToSteal,
		MaxStealCount: n.cfg.MaxStealCount,
	}

	resp, err := n.client.RequestWork(reqCtx, addr, req)
	if err != nil {
		n.metr.IncStealErrors()
		n.log.Warn().Err(err).Str("peer", addr).Msg("steal request failed")
		return
	}
	if !resp.Success || len(resp.Tasks) == 0 {
		return
	}

	n.mu.Lock()
	accepted := 0
	for _, t := range resp.Tasks {
		if n.queue.full() {
			break
		}
		n.queue.pushBack(t)
		accepted++
	}
	n.mu.Unlock()

	n.metr.AddTasksStolenIn(accepted)
	n.log.Info().Str("donor", addr).Int("count", accepted).Msg("stole tasks")
}

// RequestWork is the donor-side handler. It never lets its own queue
// drop below MinQueueLength: share is capped at half the surplus above
// the floor (integer truncation) and at request.MaxTasks. Success is
// reported only when share > 0, so a zero-task share reads as a
// refusal rather than a successful empty steal.
func (n *Node) RequestWork(ctx context.Context, req *wire.WorkRequest) (*wire.WorkResponse, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.queue.len() <= n.cfg.MinQueueLength {
		return &wire.WorkResponse{Success: false}, nil
	}

	share := (n.queue.len() - n.cfg.MinQueueLength) / 2
	if req.MaxTasks > 0 && share > req.MaxTasks {
		share = req.MaxTasks
	}
	if share <= 0 {
		return &wire.WorkResponse{Success: false}, nil
	}

	stolen := n.queue.popFrontN(share)
	for i := range stolen {
		stolen[i].StealCount++
	}

	n.metr.AddTasksStolenOut(len(stolen))
	n.log.Info().Str("requester", req.RequesterID).Int("count", len(stolen)).Msg("donated tasks")

	return &wire.WorkResponse{Success: true, Tasks: stolen}, nil
}
