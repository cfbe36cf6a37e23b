// Package wire defines the message types that cross the network
// between cluster nodes: Task, NodeStatus, WorkRequest, WorkResponse,
// and the uniform Ack. The exact byte layout is not part of the
// contract — any isomorphic encoding works, see codec.go.
package wire

import "time"

// Task is an opaque unit of work. TaskID is application-assigned and is
// not required to be globally unique. StealCount is bumped by a donor
// every time the task crosses a steal boundary.
type Task struct {
	TaskID     int32  `json:"task_id"`
	DurationMs int32  `json:"duration_ms"`
	SourceNode string `json:"source_node"`
	StealCount int32  `json:"steal_count"`
}

// NodeStatus is a point-in-time snapshot of a node's load and leadership
// opinion, broadcast on every heartbeat tick.
type NodeStatus struct {
	NodeID            string    `json:"node_id"`
	Score             float32   `json:"score"`
	QueueLength       int32     `json:"queue_length"`
	CPUUtilization    float32   `json:"cpu_utilization"`
	MemoryUtilization float32   `json:"memory_utilization"`
	LastHeartbeatTime time.Time `json:"last_heartbeat_time"`
	IsLeader          bool      `json:"is_leader"`
}

// Ack is the uniform response for Heartbeat, AssignTask, and TransferWork.
type Ack struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// WorkRequest is issued by an underloaded node to a candidate donor.
type WorkRequest struct {
	RequesterID   string `json:"requester_id"`
	MaxTasks      int32  `json:"max_tasks"`
	MaxStealCount int32  `json:"max_steal_count"`
}

// WorkResponse carries the donor's decision and, on success, the stolen
// tasks. Success is only set when at least one task is returned — a
// donor that shares zero tasks reports failure so the initiator treats
// it as a no-op rather than a successful empty steal.
type WorkResponse struct {
	Success bool   `json:"success"`
	Tasks   []Task `json:"tasks"`
}
