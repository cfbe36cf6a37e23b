package cluster

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ant-labs/clusternode/internal/wire"
)

// fakeClient is an in-memory Client that routes RPCs directly to other
// *Node instances registered in the same test, so the periodic loops
// and handlers can be exercised deterministically without a real
// network.
type fakeClient struct {
	mu    sync.Mutex
	nodes map[string]*Node
}

func newFakeClient() *fakeClient {
	return &fakeClient{nodes: make(map[string]*Node)}
}

func (f *fakeClient) register(n *Node) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodes[n.ID()] = n
}

func (f *fakeClient) lookup(addr string) (*Node, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.nodes[addr]
	return n, ok
}

func (f *fakeClient) Heartbeat(ctx context.Context, addr string, status wire.NodeStatus) (wire.Ack, error) {
	n, ok := f.lookup(addr)
	if !ok {
		return wire.Ack{}, errPeerUnreachable(addr)
	}
	ack, err := n.Heartbeat(ctx, &status)
	if err != nil {
		return wire.Ack{}, err
	}
	return *ack, nil
}

func (f *fakeClient) RequestWork(ctx context.Context, addr string, req wire.WorkRequest) (wire.WorkResponse, error) {
	n, ok := f.lookup(addr)
	if !ok {
		return wire.WorkResponse{}, errPeerUnreachable(addr)
	}
	resp, err := n.RequestWork(ctx, &req)
	if err != nil {
		return wire.WorkResponse{}, err
	}
	return *resp, nil
}

type unreachablePeerError string

func (e unreachablePeerError) Error() string { return "peer unreachable: " + string(e) }

func errPeerUnreachable(addr string) error { return unreachablePeerError(addr) }

func newTestNode(t *testing.T, cfg Config) *Node {
	t.Helper()
	return NewNode("test-node", nil, cfg, zerolog.Nop(), newFakeClient(), nil)
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}

func testRunCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 2*time.Second)
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func assertNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
