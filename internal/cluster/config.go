package cluster

import "time"

// Config holds every tunable the node exposes. cmd/server surfaces the
// queue and steal limits, the heartbeat/election/steal periods, and
// StealOnOverflow as flags with the defaults below, so those values can
// be changed without recompiling; the remaining fields have no flag.
type Config struct {
	// MaxQueueSize is MAX_QUEUE_SIZE, the TaskQueue capacity.
	MaxQueueSize int32
	// MinQueueLength is MIN_QUEUE_LENGTH, the donor's self-floor.
	MinQueueLength int32
	// MaxTasksToSteal is MAX_TASKS_TO_STEAL, the per-request donor cap.
	MaxTasksToSteal int32
	// MaxStealCount is MAX_STEAL_COUNT, the per-task thrash limit.
	MaxStealCount int32

	// QueueWeight, CPUWeight, MemoryWeight are the fitness score's term
	// weights.
	QueueWeight  float64
	CPUWeight    float64
	MemoryWeight float64

	// WorkerPollInterval is the Worker's empty-queue retry sleep.
	WorkerPollInterval time.Duration
	// MetricsSampleInterval is the Metrics Sampler's tick (1s default).
	MetricsSampleInterval time.Duration
	// HeartbeatInterval is the Heartbeat Sender's tick (2s default).
	HeartbeatInterval time.Duration
	// ElectionInterval is the Election Loop's tick (5s default).
	ElectionInterval time.Duration
	// StealInterval is the Work-Stealing Initiator's tick (3s default).
	StealInterval time.Duration

	// HeartbeatTimeout bounds each outbound Heartbeat RPC.
	HeartbeatTimeout time.Duration
	// StealTimeout bounds each outbound RequestWork RPC.
	StealTimeout time.Duration

	// StealOnOverflow enables the admission path's eager steal probe
	// when AssignTask arrives on a full queue (default true). Set false
	// to admit or reject on current queue size alone.
	StealOnOverflow bool

	// CPUMin, CPUMax, MemMin, MemMax bound the synthesized utilization
	// readings.
	CPUMin, CPUMax float64
	MemMin, MemMax float64
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		MaxQueueSize:    10,
		MinQueueLength:  2,
		MaxTasksToSteal: 3,
		MaxStealCount:   3,

		QueueWeight:  0.3,
		CPUWeight:    0.4,
		MemoryWeight: 0.3,

		WorkerPollInterval:    100 * time.Millisecond,
		MetricsSampleInterval: time.Second,
		HeartbeatInterval:     2 * time.Second,
		ElectionInterval:      5 * time.Second,
		StealInterval:         3 * time.Second,

		HeartbeatTimeout: 2 * time.Second,
		StealTimeout:     5 * time.Second,

		StealOnOverflow: true,

		CPUMin: 30, CPUMax: 100,
		MemMin: 40, MemMax: 100,
	}
}
