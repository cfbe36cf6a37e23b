package cluster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePeersFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "peers.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPeers(t *testing.T) {
	path := writePeersFile(t, "localhost:5001\n\nlocalhost:5002\n   \nlocalhost:5003\n")

	peers, err := LoadPeers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:5001", "localhost:5002", "localhost:5003"}, peers)
}

func TestLoadPeers_EmptyFile(t *testing.T) {
	path := writePeersFile(t, "\n  \n")

	_, err := LoadPeers(path)
	assert.Error(t, err)
}

func TestLoadPeers_MissingFile(t *testing.T) {
	_, err := LoadPeers(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
