package cluster

import "context"

// runElection re-derives the local leader opinion every
// ElectionInterval: compute the local score, then scan the peer view
// for a strictly higher score, with ties won by the current holder.
// The opinion is advisory and eventually consistent — each node runs
// the scan independently against its own peer view, so different nodes
// may briefly disagree.
func (n *Node) runElection(ctx context.Context) error {
	for {
		n.electOnce()

		if err := sleepCtx(ctx, n.cfg.ElectionInterval); err != nil {
			return err
		}
	}
}

func (n *Node) electOnce() {
	n.mu.Lock()
	defer n.mu.Unlock()

	// Scores cross the wire as float32, so the comparison happens at
	// float32 precision too: widening a peer's score back to float64
	// can turn a genuine tie into a strict win for the peer.
	localScore := float32(computeScore(n.cfg, n.queue.len(), n.cpuUtil, n.memUtil))
	bestNode := n.id
	bestScore := localScore

	for peerID, status := range n.peers {
		if status.Score > bestScore {
			bestNode = peerID
			bestScore = status.Score
		}
	}

	n.isLeader = bestNode == n.id
	n.metr.SetIsLeader(n.isLeader)

	if bestNode != n.leaderID {
		prev := n.leaderID
		n.leaderID = bestNode
		n.metr.IncElectionChanges()
		n.log.Info().
			Str("prev_leader", prev).
			Str("new_leader", bestNode).
			Float32("score", bestScore).
			Msg("leader opinion changed")
	}
}
