package cluster

import (
	"context"

	"github.com/ant-labs/clusternode/internal/wire"
)

// runHeartbeatSender broadcasts local status to every known peer every
// HeartbeatInterval. Failures are logged and swallowed: there is no
// retry and no back-off, the next tick retries naturally. Each tick
// builds one status payload under mu, then releases the lock before
// issuing the RPCs — no blocking I/O ever happens inside a held critical
// section.
func (n *Node) runHeartbeatSender(ctx context.Context) error {
	for {
		n.mu.Lock()
		status := n.snapshotStatusLocked()
		n.mu.Unlock()

		for _, addr := range n.peerAddrs {
			n.sendHeartbeatTo(ctx, addr, status)
		}

		if err := sleepCtx(ctx, n.cfg.HeartbeatInterval); err != nil {
			return err
		}
	}
}

func (n *Node) sendHeartbeatTo(ctx context.Context, addr string, status wire.NodeStatus) {
	hbCtx, cancel := context.WithTimeout(ctx, n.cfg.HeartbeatTimeout)
	defer cancel()

	if _, err := n.client.Heartbeat(hbCtx, addr, status); err != nil {
		n.metr.IncHeartbeatErrors()
		n.log.Warn().Err(err).Str("peer", addr).Msg("heartbeat send failed")
	}
}

// Heartbeat is the server-side receive handler: write the incoming
// snapshot into the peer view under mu, overwriting any prior entry,
// and unconditionally ack. The payload is never validated beyond the
// NodeID already being present on the wire struct.
func (n *Node) Heartbeat(ctx context.Context, status *wire.NodeStatus) (*wire.Ack, error) {
	n.mu.Lock()
	n.peers[status.NodeID] = *status
	n.mu.Unlock()

	return &wire.Ack{Message: "ACK", Success: true}, nil
}
