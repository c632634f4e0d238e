// Package health serves liveness and queue statistics over HTTP.
package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nguyentantai21042004/minutes-bot/internal/dispatcher"
	"github.com/nguyentantai21042004/minutes-bot/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// StatsSource reports dispatcher counters
type StatsSource interface {
	Stats() dispatcher.Stats
}

type Server struct {
	srv    *http.Server
	logger logger.Logger
}

// NewRouter builds the gin engine with /healthz and /status
func NewRouter(stats StatsSource, startedAt time.Time) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uptime_seconds": int64(time.Since(startedAt).Seconds()),
			"dispatcher":     stats.Stats(),
		})
	})

	return router
}

func New(addr string, stats StatsSource, log logger.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(stats, time.Now()),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: log,
	}
}

// Start serves until ctx is cancelled, then shuts the server down
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Health server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("health server: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown health server: %w", err)
	}
	return ctx.Err()
}
