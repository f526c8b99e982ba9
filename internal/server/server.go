// Package server exposes the daemon's HTTP status and command API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rockit-astro/lmountd/internal/daemon"
	"github.com/rockit-astro/lmountd/pkg/lmount"
)

// commandResponse is the JSON envelope for command results. Status carries
// the numeric code; Error its message for anything other than success.
type commandResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error,omitempty"`
}

func newCommandResponse(status lmount.CommandStatus) commandResponse {
	resp := commandResponse{Status: int(status)}
	if status != lmount.Succeeded {
		resp.Error = status.Message()
	}
	return resp
}

// Server serves the daemon API over HTTP.
type Server struct {
	daemon  *daemon.Daemon
	logger  *zap.Logger
	engine  *gin.Engine
	httpSrv *http.Server
}

// New creates the API server for the given daemon, bound to addr.
// Status reads are open; command routes are restricted to the configured
// control machines.
func New(d *daemon.Daemon, logger *zap.Logger, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		daemon: d,
		logger: logger.With(zap.String("component", "server")),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RequestID())

	engine.GET("/status", s.handleStatus)
	engine.GET("/park-positions", s.handleParkPositions)

	commands := engine.Group("/command", ControlIPAllowlist(d.Config().ControlIPs, s.logger))
	commands.POST("/park", s.handlePark)
	commands.POST("/initialize", s.handleInitialize)

	s.engine = engine
	s.httpSrv = &http.Server{Addr: addr, Handler: engine}

	return s
}

// Handler returns the underlying HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	s.logger.Info("API server listening", zap.String("addr", s.httpSrv.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.daemon.Report())
}

func (s *Server) handleParkPositions(c *gin.Context) {
	c.JSON(http.StatusOK, s.daemon.Config().ParkPositions)
}

func (s *Server) handlePark(c *gin.Context) {
	var req struct {
		Position string `json:"position"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, newCommandResponse(lmount.Failed))
		return
	}

	status := s.daemon.Park(req.Position)
	if status != lmount.Succeeded {
		s.logger.Info("Park command rejected",
			zap.String("position", req.Position),
			zap.Int("status", int(status)))
	}

	c.JSON(http.StatusOK, newCommandResponse(status))
}

func (s *Server) handleInitialize(c *gin.Context) {
	c.JSON(http.StatusOK, newCommandResponse(s.daemon.Initialize()))
}
