package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/api"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and interview pages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
}

func serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := cfg.ValidateServer(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		return err
	}
	if addr := viper.GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}

	c, err := build(ctx, cfg, log)
	if err != nil {
		log.Error("starting services", zap.Error(err))
		return err
	}
	defer c.Close()

	created, err := c.svc.SeedHR(ctx, cfg.Auth.HREmail, cfg.Auth.HRPassword)
	if err != nil {
		log.Error("seeding hr account", zap.Error(err))
		return err
	}
	if created {
		log.Info("hr account created", zap.String("email", cfg.Auth.HREmail))
	}

	if !viper.GetBool("debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewServer(c.svc, c.tokens, log).Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting the interview-bot",
			zap.String("version", version),
			zap.String("addr", cfg.Server.Addr),
			zap.String("base_url", cfg.Server.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
		return err
	}
	return nil
}
