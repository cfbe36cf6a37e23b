package cluster

import (
	"context"

	"github.com/ant-labs/clusternode/internal/wire"
)

// TransferWork is a push endpoint: append the task unconditionally
// under mu and ack. No admission check — this is a privileged
// rebalancing operation reserved for a future push-mode rebalancer;
// rebalancing today is pull-only and nothing in this package's loops
// calls it.
func (n *Node) TransferWork(ctx context.Context, task *wire.Task) (*wire.Ack, error) {
	n.mu.Lock()
	n.queue.pushBack(*task)
	n.mu.Unlock()

	return &wire.Ack{Success: true}, nil
}
