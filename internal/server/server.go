package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/handler"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer builds the application server around the HTTP handler set.
// Config validation guarantees a listen address for every config
// source; the guard here covers direct construction in tests.
func NewServer(handlers *handler.Handlers, cfg config.Server, log *logger.Logger) (Server, error) {
	if cfg.HTTPAddress == "" {
		return nil, errServerNotConfigured
	}

	log.Info().Str("address", cfg.HTTPAddress).Msg("creating server")

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, log),
		logger:     log,
	}, nil
}

// RunServer serves until a stop signal arrives, then drains in-flight
// requests before returning. It also returns when the listener fails
// outright, so a busy port does not leave the process hanging.
func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	serverDone := make(chan struct{})
	go func() {
		s.httpServer.RunServer()
		close(serverDone)
	}()

	s.logger.Info().Msg("launching HTTP server")

	select {
	case <-ctx.Done():
		s.Shutdown()
		<-serverDone
		s.logger.Info().Msg("graceful shutdown complete")
	case <-serverDone:
		// listen error; already logged by the HTTP server
	}
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
}
