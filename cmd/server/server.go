package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/thereayou/blog-lite/internal/config"
	"github.com/thereayou/blog-lite/internal/database"
	"github.com/thereayou/blog-lite/internal/seed"
	"github.com/thereayou/blog-lite/internal/services"
)

var _ services.DatabaseService = (*database.Database)(nil)

const shutdownTimeout = 10 * time.Second

type Server struct {
	Config *config.Config
	Router *gin.Engine
	DB     *database.Database
}

// NewServer connects to the store and wires the router. Seeding is a
// separate step so it can finish before Run accepts requests.
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbConn, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database connect failed: %w", err)
	}

	return &Server{
		Config: cfg,
		Router: NewRouter(dbConn),
		DB:     dbConn,
	}, nil
}

// Seed imports the CSV seed data if the store is empty.
func (s *Server) Seed(ctx context.Context) error {
	_, err := seed.NewSeeder(s.DB, s.Config.Seed.DataDir).Run(ctx)
	return err
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + s.Config.App.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return s.DB.Close()
}
