package cluster

import "context"

// runMetricsSampler overwrites the local utilization readings every
// MetricsSampleInterval. Without real OS introspection the readings
// are synthesized uniformly from [CPUMin,CPUMax] and [MemMin,MemMax];
// a sampler backed by real OS metrics (e.g. gopsutil) could replace
// this without changing any contract.
func (n *Node) runMetricsSampler(ctx context.Context) error {
	for {
		cpu := n.cfg.CPUMin + n.rng.Float64()*(n.cfg.CPUMax-n.cfg.CPUMin)
		mem := n.cfg.MemMin + n.rng.Float64()*(n.cfg.MemMax-n.cfg.MemMin)

		n.mu.Lock()
		n.cpuUtil = cpu
		n.memUtil = mem
		qlen := n.queue.len()
		score := computeScore(n.cfg, qlen, n.cpuUtil, n.memUtil)
		n.mu.Unlock()

		n.metr.SetUtilization(cpu, mem)
		n.metr.SetQueueLength(qlen)
		n.metr.SetScore(score)

		if err := sleepCtx(ctx, n.cfg.MetricsSampleInterval); err != nil {
			return err
		}
	}
}
