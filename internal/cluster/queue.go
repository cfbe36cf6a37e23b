package cluster

import "github.com/ant-labs/clusternode/internal/wire"

// taskQueue is a bounded FIFO of wire.Task. It holds no lock of its
// own: queue length is read together with the peer view and the local
// metrics by the scoring and stealing paths, so every mutation happens
// under the single node-wide Node.mu — callers must hold it before
// calling any of these.
type taskQueue struct {
	tasks    []wire.Task
	capacity int32
}

func newTaskQueue(capacity int32) taskQueue {
	return taskQueue{capacity: capacity}
}

// len returns the current queue length.
func (q *taskQueue) len() int32 {
	return int32(len(q.tasks))
}

// full reports whether the queue is at capacity.
func (q *taskQueue) full() bool {
	return q.len() >= q.capacity
}

// pushBack appends a task to the tail. Caller must have already checked
// full() — pushBack never truncates or rejects on its own.
func (q *taskQueue) pushBack(t wire.Task) {
	q.tasks = append(q.tasks, t)
}

// popFront removes and returns the head task, if any.
func (q *taskQueue) popFront() (wire.Task, bool) {
	if len(q.tasks) == 0 {
		return wire.Task{}, false
	}
	t := q.tasks[0]
	q.tasks = q.tasks[1:]
	return t, true
}

// popFrontN removes and returns up to n tasks from the head, in order.
// Returns fewer than n if the queue is shorter.
func (q *taskQueue) popFrontN(n int32) []wire.Task {
	if n <= 0 || len(q.tasks) == 0 {
		return nil
	}
	if n > int32(len(q.tasks)) {
		n = int32(len(q.tasks))
	}
	out := make([]wire.Task, n)
	copy(out, q.tasks[:n])
	q.tasks = q.tasks[n:]
	return out
}

// avgStealCount returns the average steal count across enqueued tasks,
// used by the stealing loop's anti-thrashing guard. Zero on an empty
// queue.
func (q *taskQueue) avgStealCount() float64 {
	if len(q.tasks) == 0 {
		return 0
	}
	var sum int64
	for _, t := range q.tasks {
		sum += int64(t.StealCount)
	}
	return float64(sum) / float64(len(q.tasks))
}
