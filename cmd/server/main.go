// Command server runs a single cluster node: it serves the NodeService
// RPC surface on the node's own address and runs the worker, metrics
// sampler, heartbeat, election, and work-stealing loops until the
// process receives SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/ant-labs/clusternode/internal/cluster"
	"github.com/ant-labs/clusternode/internal/obs"
	"github.com/ant-labs/clusternode/internal/rpc"
)

func main() {
	if err := newServerCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newServerCmd() *cobra.Command {
	cfg := cluster.DefaultConfig()
	var (
		metricsAddr string
		logLevel    string
	)

	cmd := &cobra.Command{
		Use:   "server <node_id> <peers_file>",
		Short: "Run one node of the work-stealing compute cluster",
		Long: `server runs a single cluster node. node_id is the host:port the node
listens on and doubles as its identity in heartbeats and elections.
peers_file lists one peer address per line; blank lines are ignored.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], args[1], cfg, metricsAddr, logLevel)
		},
	}

	f := cmd.Flags()
	f.Int32Var(&cfg.MaxQueueSize, "max-queue-size", cfg.MaxQueueSize, "task queue capacity")
	f.Int32Var(&cfg.MinQueueLength, "min-queue-length", cfg.MinQueueLength, "tasks a donor always keeps; also the initiator's underfull threshold")
	f.Int32Var(&cfg.MaxTasksToSteal, "max-tasks-to-steal", cfg.MaxTasksToSteal, "cap on tasks pulled per steal request")
	f.Int32Var(&cfg.MaxStealCount, "max-steal-count", cfg.MaxStealCount, "times a task may cross a steal boundary")
	f.DurationVar(&cfg.HeartbeatInterval, "heartbeat-interval", cfg.HeartbeatInterval, "heartbeat broadcast period")
	f.DurationVar(&cfg.ElectionInterval, "election-interval", cfg.ElectionInterval, "leader re-selection period")
	f.DurationVar(&cfg.StealInterval, "steal-interval", cfg.StealInterval, "work-stealing initiator period")
	f.BoolVar(&cfg.StealOnOverflow, "steal-on-overflow", cfg.StealOnOverflow, "probe the stealing routine when AssignTask overflows")
	f.StringVar(&metricsAddr, "metrics-addr", "", "listen address for Prometheus metrics (disabled when empty)")
	f.StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")

	return cmd
}

func run(nodeID, peersFile string, cfg cluster.Config, metricsAddr, logLevel string) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	peers, err := cluster.LoadPeers(peersFile)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", nodeID)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", nodeID, err)
	}

	reg := prometheus.NewRegistry()
	node := cluster.NewNode(nodeID, peers, cfg, log, cluster.NewGRPCClient(), obs.NewMetrics(reg, nodeID))

	srv := grpc.NewServer()
	rpc.RegisterNodeServiceServer(srv, node)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("node_id", nodeID).Str("listen", lis.Addr().String()).Int("peers", len(peers)).Msg("node started")
		return srv.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		srv.GracefulStop()
		return nil
	})
	g.Go(func() error {
		if err := node.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	if metricsAddr != "" {
		g.Go(func() error { return serveMetrics(gctx, log, metricsAddr, reg) })
	}

	if err := g.Wait(); err != nil && !errors.Is(err, grpc.ErrServerStopped) && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Str("node_id", nodeID).Msg("node stopped")
	return nil
}

func serveMetrics(ctx context.Context, log zerolog.Logger, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("metrics_addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
