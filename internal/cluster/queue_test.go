package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ant-labs/clusternode/internal/wire"
)

func TestTaskQueue_PushPopFIFO(t *testing.T) {
	q := newTaskQueue(3)
	require.False(t, q.full())

	q.pushBack(wire.Task{TaskID: 1})
	q.pushBack(wire.Task{TaskID: 2})
	assert.Equal(t, int32(2), q.len())

	first, ok := q.popFront()
	require.True(t, ok)
	assert.Equal(t, int32(1), first.TaskID)

	second, ok := q.popFront()
	require.True(t, ok)
	assert.Equal(t, int32(2), second.TaskID)

	_, ok = q.popFront()
	assert.False(t, ok)
}

func TestTaskQueue_Capacity(t *testing.T) {
	q := newTaskQueue(2)
	q.pushBack(wire.Task{TaskID: 1})
	q.pushBack(wire.Task{TaskID: 2})
	assert.True(t, q.full())
}

func TestTaskQueue_PopFrontN(t *testing.T) {
	q := newTaskQueue(10)
	for i := int32(1); i <= 5; i++ {
		q.pushBack(wire.Task{TaskID: i})
	}

	got := q.popFrontN(3)
	require.Len(t, got, 3)
	assert.Equal(t, []int32{1, 2, 3}, []int32{got[0].TaskID, got[1].TaskID, got[2].TaskID})
	assert.Equal(t, int32(2), q.len())

	// Asking for more than remains returns only what's left.
	got = q.popFrontN(10)
	assert.Len(t, got, 2)
	assert.Equal(t, int32(0), q.len())

	// Popping an empty queue is a no-op.
	assert.Nil(t, q.popFrontN(3))
}

func TestTaskQueue_AvgStealCount(t *testing.T) {
	q := newTaskQueue(10)
	assert.Equal(t, 0.0, q.avgStealCount())

	q.pushBack(wire.Task{TaskID: 1, StealCount: 1})
	q.pushBack(wire.Task{TaskID: 2, StealCount: 3})
	assert.InDelta(t, 2.0, q.avgStealCount(), 1e-9)
}
