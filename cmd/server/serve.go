package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/spendcast-backend/internal/adapter/grpc"
	"github.com/simaogato/spendcast-backend/internal/adapter/rest"
	"github.com/simaogato/spendcast-backend/internal/usecase/digest"
)

const shutdownTimeout = 15 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	// Demo data
	if a.cfg.SeedDemo {
		if err := a.seeder().Seed(ctx); err != nil {
			return err
		}
		a.log.Info("demo data seeded")
	}

	// gRPC server with logging then auth interceptors
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(a.log, a.metrics),
			grpcadapter.AuthInterceptor(a.tokens),
		),
	)
	grpcadapter.RegisterForecastServiceServer(grpcServer,
		grpcadapter.NewServer(a.forecasts, a.recommendations, a.trends, a.metrics))
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", a.cfg.GRPCAddr)
	if err != nil {
		return err
	}
	go func() {
		a.log.WithField("addr", a.cfg.GRPCAddr).Info("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			a.log.WithError(err).Error("gRPC server stopped unexpectedly")
		}
	}()

	// REST server
	handler := rest.NewHandler(a.profiles, a.expenses, a.forecasts, a.recommendations, a.trends, a.tokens, a.metrics, a.log)
	httpServer := &http.Server{
		Addr: a.cfg.HTTPAddr,
		Handler: handler.Router(rest.Options{
			CORSAllowedOrigins: a.cfg.HTTP.CORSAllowedOrigins,
			RateLimitRPS:       a.cfg.HTTP.RateLimitRPS,
			RateLimitBurst:     a.cfg.HTTP.RateLimitBurst,
			MetricsHandler:     a.metrics.Handler(),
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		a.log.WithField("addr", a.cfg.HTTPAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("HTTP server stopped unexpectedly")
		}
	}()

	// Monthly digest
	var scheduler *digest.Scheduler
	if a.cfg.Digest.Enabled {
		scheduler, err = digest.NewScheduler(a.cfg.Digest.Schedule, a.digest(), a.log)
		if err != nil {
			grpcServer.Stop()
			return err
		}
		scheduler.Start()
	}

	// Graceful shutdown
	waitForShutdown(a, grpcServer, httpServer, scheduler)
	return nil
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the servers
func waitForShutdown(a *app, grpcServer *grpclib.Server, httpServer *http.Server, scheduler *digest.Scheduler) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	a.log.WithField("signal", sig.String()).Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(ctx)
	}
	if err := httpServer.Shutdown(ctx); err != nil {
		a.log.WithError(err).Warn("HTTP server shutdown incomplete")
	}
	grpcServer.GracefulStop()
	a.log.Info("servers stopped")
}
