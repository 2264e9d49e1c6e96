package webserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
)

// State is the lifecycle state of a Server.
type State uint8

const (
	// StateStopped is the initial state and the state after any Stop
	// attempt, successful or not.
	StateStopped State = iota

	// StateRunning means the connector is bound and serving.
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Start transitions the server from stopped to running: it binds the
// configured host and port and begins serving the assembled handler
// graph in the background. Start returns once the listener is bound.
//
// A second Start before Stop fails with ErrAlreadyRunning and leaves the
// underlying server untouched. A bind failure is wrapped in ErrStart and
// the server remains stopped. Start and Stop serialize against each
// other; concurrent calls observe a consistent total order.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRunning {
		return ErrAlreadyRunning
	}

	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	s.logger.Info().
		Str("server", s.cfg.Name).
		Str("addr", addr).
		Msg("starting server")

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: listen on %s: %w", ErrStart, addr, err)
	}
	if s.cfg.WrapListener != nil {
		listener = s.cfg.WrapListener(listener)
	}

	httpServer := &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		MaxHeaderBytes:    s.cfg.MaxHeaderBytes,
	}
	if s.cfg.ConfigureServer != nil {
		s.cfg.ConfigureServer(httpServer)
	}

	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("server error")
		}
	}()

	s.listener = listener
	s.httpServer = httpServer
	s.state = StateRunning

	s.logger.Info().
		Str("addr", listener.Addr().String()).
		Msg("server started")
	return nil
}

// Stop transitions the server from running to stopped with a graceful
// drain bounded by ShutdownTimeout; remaining connections are then
// force-closed.
//
// Stop on a stopped server fails with ErrAlreadyStopped. A shutdown
// failure is wrapped in ErrStop and still surfaced, but the state is
// forced to stopped in every case: the controller never stays running
// because shutdown misbehaved.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRunning {
		return ErrAlreadyStopped
	}

	s.logger.Info().Str("server", s.cfg.Name).Msg("stopping server")

	httpServer := s.httpServer
	defer func() {
		s.state = StateStopped
		s.httpServer = nil
		s.listener = nil
	}()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("graceful shutdown failed, forcing close")
		if closeErr := httpServer.Close(); closeErr != nil {
			s.logger.Error().Err(closeErr).Msg("force close failed")
		}
		return fmt.Errorf("%w: %w", ErrStop, err)
	}

	s.logger.Info().Msg("server stopped")
	return nil
}

// IsRunning reports the lifecycle state.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateRunning
}

// Addr returns the bound listener address, or nil when the server is not
// running. With port 0 this is how the ephemeral port is read back.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
