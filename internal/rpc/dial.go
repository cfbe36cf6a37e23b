package rpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ant-labs/clusternode/internal/wire"
)

// Dial opens a client connection to a peer's NodeService, bounded by
// timeout so a dead peer cannot stall a periodic loop. Transport is
// plaintext and unauthenticated; nodes are assumed to share a trusted
// network.
func Dial(ctx context.Context, target string, timeout time.Duration) (*grpc.ClientConn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	conn, err := grpc.DialContext(dialCtx, target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(wire.CodecName)),
		grpc.WithBlock(),
	)
	if err != nil {
		return nil, fmt.Errorf("rpc: dial %s: %w", target, err)
	}
	return conn, nil
}
