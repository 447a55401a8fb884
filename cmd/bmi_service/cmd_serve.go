package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"bmi-advisor/internal/api"
	"bmi-advisor/internal/auth"
	"bmi-advisor/internal/calculator"
	"bmi-advisor/internal/events"
	"bmi-advisor/internal/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	if err := a.cfg.ValidateServe(); err != nil {
		return err
	}

	advisor, err := a.advisor()
	if err != nil {
		return err
	}

	db, err := storage.NewSQLite(a.cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer storage.Close(db)

	publisher, err := a.publisher()
	if err != nil {
		return err
	}
	defer publisher.Close()

	authSvc := auth.NewService(db, a.cfg.Auth.Secret, a.cfg.Auth.TokenTTL)
	calc := calculator.NewHandler(advisor, storage.NewReadingStore(db), publisher, a.logger)

	ln, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	server := &http.Server{
		Addr:    ln.Addr().String(),
		Handler: api.NewRouter(authSvc, calc, a.logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server started", zap.String("addr", server.Addr))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *app) publisher() (events.Publisher, error) {
	if a.cfg.Events.AMQPAddr == "" {
		a.logger.Info("event publishing disabled")
		return events.Noop{}, nil
	}
	return events.NewAMQP(a.cfg.Events.AMQPAddr, a.cfg.Events.Queue, a.logger)
}
