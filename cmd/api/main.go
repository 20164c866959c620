package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sitecrew/workforce-backend/internal/app"
	"github.com/sitecrew/workforce-backend/internal/config"
	appHTTP "github.com/sitecrew/workforce-backend/internal/handler/http"
	"github.com/sitecrew/workforce-backend/internal/pkg/clock"
	"github.com/sitecrew/workforce-backend/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg.App.Env, cfg.SlogLevel())
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clk := clock.New(loc)

	stores, err := app.OpenStores(ctx, cfg, clk)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Store.Type, err)
	}
	defer stores.Close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	services := app.NewServices(stores, clk, JWTService)

	router := appHTTP.NewRouter(JWTService, logger, cfg.App.CORSAllowedOrigins, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(services.Auth),
		Attendance: appHTTP.NewAttendanceHandler(services.Attendance, services.Report),
		Leave:      appHTTP.NewLeaveHandler(services.Leave),
		Team:       appHTTP.NewTeamHandler(services.Team),
		Report:     appHTTP.NewReportHandler(services.Report),
		Dashboard:  appHTTP.NewDashboardHandler(services.Dashboard),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "store", cfg.Store.Type, "timezone", loc.String())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
