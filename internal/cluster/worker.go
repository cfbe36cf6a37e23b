package cluster

import (
	"context"
	"time"

	"github.com/ant-labs/clusternode/internal/util"
	"github.com/ant-labs/clusternode/internal/wire"
)

// runWorker is the single long-running consumer: while
// the queue is non-empty, atomically remove the head under mu and
// execute it outside the lock; when empty, sleep WorkerPollInterval and
// retry. Polling rather than a condition variable keeps every reader and
// writer of queue size on the same short critical section, which
// matters because the election and stealing loops both read queue
// length via the same mutex.
func (n *Node) runWorker(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n.mu.Lock()
		task, ok := n.queue.popFront()
		n.mu.Unlock()

		if !ok {
			if err := sleepCtx(ctx, n.cfg.WorkerPollInterval); err != nil {
				return err
			}
			continue
		}

		n.executeTask(ctx, task)
	}
}

// executeTask simulates the task's work by sleeping for its duration.
// Cancellation during execution returns promptly rather than finishing
// the sleep.
func (n *Node) executeTask(ctx context.Context, task wire.Task) {
	timer := util.NewTimer()
	_ = sleepCtx(ctx, time.Duration(task.DurationMs)*time.Millisecond)
	n.log.Debug().
		Int32("task_id", task.TaskID).
		Str("source_node", task.SourceNode).
		Int32("steal_count", task.StealCount).
		Float64("elapsed_ms", timer.Ms()).
		Msg("task executed")
	n.metr.IncTasksExecuted()
}
