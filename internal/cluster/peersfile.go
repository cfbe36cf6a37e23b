package cluster

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadPeers reads a peers file: one peer address per line, blank lines
// ignored. An empty peer list is an error — a node with nothing to
// gossip with cannot participate in the cluster.
func LoadPeers(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cluster: open peers file: %w", err)
	}
	defer f.Close()

	var peers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		peers = append(peers, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cluster: read peers file: %w", err)
	}
	if len(peers) == 0 {
		return nil, fmt.Errorf("cluster: peers file %s lists no peers", path)
	}
	return peers, nil
}
