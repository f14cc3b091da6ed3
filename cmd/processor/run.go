package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"trustimonials/config"
	"trustimonials/internal/db"
	"trustimonials/internal/ffmpeg"
	"trustimonials/internal/jobs"
	"trustimonials/internal/processorclient"
	"trustimonials/internal/storage"
	"trustimonials/internal/worker"
)

func newRunCmd() *cobra.Command {
	var staleAfter time.Duration
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll processing_jobs and run them on the worker pool",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, staleAfter)
		},
	}
	cmd.Flags().DurationVar(&staleAfter, "stale-after", 15*time.Minute,
		"requeue jobs left in processing for longer than this on startup")
	return cmd
}

func run(ctx context.Context, staleAfter time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required to run the processor")
	}
	log := config.NewLogger(cfg.LogLevel)

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	queue := db.NewJobQueue(pool)

	if n, err := queue.RequeueStale(ctx, staleAfter); err != nil {
		return err
	} else if n > 0 {
		log.WithField("count", n).Warn("Requeued stale processing jobs")
	}

	client, err := config.NewSupabaseClient(cfg)
	if err != nil {
		return err
	}
	bucket := storage.NewSupabaseBucket(client.Storage, cfg.Bucket, cfg.Supabase.URL)

	// Jobs keep their context through shutdown so Stop can drain them.
	jobCtx, cancelJobs := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelJobs()
	dispatcher := worker.NewDispatcher(cfg.Processor.Workers, cfg.Processor.QueueSize, queue, log)
	dispatcher.Run(jobCtx)

	poller := &jobs.Poller{
		Queue: queue,
		Pool:  dispatcher,
		Deps: jobs.Deps{
			Bucket:      bucket,
			Thumbnailer: ffmpeg.New(),
			Data:        queue,
			Options:     ffmpeg.DefaultThumbnailOptions,
			Logger:      log,
		},
		Interval:  cfg.Processor.PollInterval,
		BatchSize: cfg.Processor.Workers,
		Logger:    log,
	}

	lis, err := net.Listen("tcp", cfg.Processor.HealthAddr)
	if err != nil {
		dispatcher.Stop()
		return fmt.Errorf("failed to listen on %s: %w", cfg.Processor.HealthAddr, err)
	}
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(processorclient.ServiceName, healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return poller.Run(gctx)
	})
	g.Go(func() error {
		log.WithField("addr", lis.Addr().String()).Info("Health service listening")
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		<-gctx.Done()
		healthServer.SetServingStatus(processorclient.ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
		grpcServer.GracefulStop()
		return nil
	})

	log.WithFields(logrus.Fields{
		"workers":       cfg.Processor.Workers,
		"poll_interval": cfg.Processor.PollInterval.String(),
	}).Info("Processor started")

	err = g.Wait()
	log.Info("Shutting down processor")
	dispatcher.Stop()
	if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}
