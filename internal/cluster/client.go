package cluster

import (
	"context"
	"time"

	"github.com/ant-labs/clusternode/internal/rpc"
	"github.com/ant-labs/clusternode/internal/wire"
)

// Client is the outbound half of the RPC surface: the heartbeat sender
// and work-stealing initiator use it to reach peers. It is an interface
// so tests can substitute an in-memory peer set instead of dialing real
// gRPC connections.
type Client interface {
	Heartbeat(ctx context.Context, addr string, status wire.NodeStatus) (wire.Ack, error)
	RequestWork(ctx context.Context, addr string, req wire.WorkRequest) (wire.WorkResponse, error)
}

// grpcClient is the production Client: it dials each peer fresh per
// call. A short-lived dial keeps a dead peer from holding a connection
// open across ticks; the bounded per-call timeout is what actually
// protects the periodic loops from stalling.
type grpcClient struct{}

// NewGRPCClient returns the production gRPC-backed Client.
func NewGRPCClient() Client { return grpcClient{} }

func (grpcClient) Heartbeat(ctx context.Context, addr string, status wire.NodeStatus) (wire.Ack, error) {
	conn, err := rpc.Dial(ctx, addr, dialTimeoutFrom(ctx))
	if err != nil {
		return wire.Ack{}, err
	}
	defer conn.Close()

	ack, err := rpc.NewNodeServiceClient(conn).Heartbeat(ctx, &status)
	if err != nil {
		return wire.Ack{}, err
	}
	return *ack, nil
}

func (grpcClient) RequestWork(ctx context.Context, addr string, req wire.WorkRequest) (wire.WorkResponse, error) {
	conn, err := rpc.Dial(ctx, addr, dialTimeoutFrom(ctx))
	if err != nil {
		return wire.WorkResponse{}, err
	}
	defer conn.Close()

	resp, err := rpc.NewNodeServiceClient(conn).RequestWork(ctx, &req)
	if err != nil {
		return wire.WorkResponse{}, err
	}
	return *resp, nil
}

// dialTimeoutFrom derives the dial's own timeout from the deadline
// already attached to ctx by the caller (heartbeat.go / workstealing.go
// each wrap their RPCs in context.WithTimeout before calling in). If
// none is set, fall back to a conservative default so Dial never blocks
// forever.
func dialTimeoutFrom(ctx context.Context) time.Duration {
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 {
			return d
		}
	}
	return 5 * time.Second
}
