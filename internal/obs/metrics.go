// Package obs wires the node's internal gauges and counters into
// Prometheus. Metrics are observational only: nothing in
// internal/cluster branches on a metric value.
package obs

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles every gauge/counter a Node exports. A nil *Metrics is
// safe to use everywhere it's threaded through — every method is a
// no-op on a nil receiver, so metrics collection can be disabled
// without littering internal/cluster with nil checks at call sites.
type Metrics struct {
	QueueLength    prometheus.Gauge
	Score          prometheus.Gauge
	CPUUtilization prometheus.Gauge
	MemUtilization prometheus.Gauge
	IsLeader       prometheus.Gauge

	TasksExecuted   prometheus.Counter
	TasksAdmitted   prometheus.Counter
	TasksRejected   prometheus.Counter
	TasksStolenIn   prometheus.Counter
	TasksStolenOut  prometheus.Counter
	HeartbeatErrors prometheus.Counter
	StealErrors     prometheus.Counter
	ElectionChanges prometheus.Counter
}

// NewMetrics registers a fresh set of collectors against reg, labelled
// with the node's identity so multiple nodes sharing a process (as in
// tests) don't collide on metric names.
func NewMetrics(reg prometheus.Registerer, nodeID string) *Metrics {
	labels := prometheus.Labels{"node_id": nodeID}
	f := promauto{reg: reg, labels: labels}
	return &Metrics{
		QueueLength:    f.gauge("clusternode_queue_length", "Current local task queue length."),
		Score:          f.gauge("clusternode_fitness_score", "Current local fitness score."),
		CPUUtilization: f.gauge("clusternode_cpu_utilization", "Synthesized CPU utilization percentage."),
		MemUtilization: f.gauge("clusternode_memory_utilization", "Synthesized memory utilization percentage."),
		IsLeader:       f.gauge("clusternode_is_leader", "1 if this node currently believes itself the elected leader."),

		TasksExecuted:   f.counter("clusternode_tasks_executed_total", "Tasks the local worker has finished executing."),
		TasksAdmitted:   f.counter("clusternode_tasks_admitted_total", "AssignTask calls accepted."),
		TasksRejected:   f.counter("clusternode_tasks_rejected_total", "AssignTask calls rejected (queue full)."),
		TasksStolenIn:   f.counter("clusternode_tasks_stolen_in_total", "Tasks pulled from peers by this node's stealing loop."),
		TasksStolenOut:  f.counter("clusternode_tasks_stolen_out_total", "Tasks given up to peers as a donor."),
		HeartbeatErrors: f.counter("clusternode_heartbeat_errors_total", "Outbound heartbeat RPCs that failed or timed out."),
		StealErrors:     f.counter("clusternode_steal_errors_total", "Outbound RequestWork RPCs that failed or timed out."),
		ElectionChanges: f.counter("clusternode_election_changes_total", "Times the local leader opinion changed."),
	}
}

type promauto struct {
	reg    prometheus.Registerer
	labels prometheus.Labels
}

func (f promauto) gauge(name, help string) prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help, ConstLabels: f.labels})
	f.reg.MustRegister(g)
	return g
}

func (f promauto) counter(name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help, ConstLabels: f.labels})
	f.reg.MustRegister(c)
	return c
}

// Set* helpers below tolerate a nil *Metrics.

func (m *Metrics) SetQueueLength(v int32) {
	if m == nil {
		return
	}
	m.QueueLength.Set(float64(v))
}

func (m *Metrics) SetScore(v float64) {
	if m == nil {
		return
	}
	m.Score.Set(v)
}

func (m *Metrics) SetUtilization(cpu, mem float64) {
	if m == nil {
		return
	}
	m.CPUUtilization.Set(cpu)
	m.MemUtilization.Set(mem)
}

func (m *Metrics) SetIsLeader(v bool) {
	if m == nil {
		return
	}
	if v {
		m.IsLeader.Set(1)
	} else {
		m.IsLeader.Set(0)
	}
}

func (m *Metrics) IncTasksExecuted() {
	if m == nil {
		return
	}
	m.TasksExecuted.Inc()
}

func (m *Metrics) IncTasksAdmitted() {
	if m == nil {
		return
	}
	m.TasksAdmitted.Inc()
}

func (m *Metrics) IncTasksRejected() {
	if m == nil {
		return
	}
	m.TasksRejected.Inc()
}

func (m *Metrics) AddTasksStolenIn(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.TasksStolenIn.Add(float64(n))
}

func (m *Metrics) AddTasksStolenOut(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.TasksStolenOut.Add(float64(n))
}

func (m *Metrics) IncHeartbeatErrors() {
	if m == nil {
		return
	}
	m.HeartbeatErrors.Inc()
}

func (m *Metrics) IncStealErrors() {
	if m == nil {
		return
	}
	m.StealErrors.Inc()
}

func (m *Metrics) IncElectionChanges() {
	if m == nil {
		return
	}
	m.ElectionChanges.Inc()
}
