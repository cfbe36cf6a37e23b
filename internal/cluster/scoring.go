package cluster

// computeScore is the node fitness function:
//
//	score = (1 - queue_weight * queue_length / 100)
//	      + cpu_weight * (1 - cpu_utilization / 100)
//	      + memory_weight * (1 - memory_utilization / 100)
//
// Higher scores mean lower load, i.e. more attractive as leader or
// donor. The function is pure and deterministic given its inputs; the
// caller is responsible for reading queueLength/cpu/mem under Node.mu
// since queue_length is part of the protected state.
func computeScore(cfg Config, queueLength int32, cpuUtilization, memoryUtilization float64) float64 {
	return (1 - cfg.QueueWeight*float64(queueLength)/100) +
		cfg.CPUWeight*(1-cpuUtilization/100) +
		cfg.MemoryWeight*(1-memoryUtilization/100)
}
