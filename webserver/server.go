package webserver

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Server is the assembled, running-capable server. It is produced by New
// exactly once from a configuration and never reconfigured; the only
// mutable state is the lifecycle, guarded by a single lock.
//
//	server, err := webserver.New(
//	    webserver.WithProvider(registry),
//	    webserver.WithHost("127.0.0.1"),
//	    webserver.WithPort(8888),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := server.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Stop(context.Background())
type Server struct {
	cfg    Config
	logger zerolog.Logger

	handler      http.Handler
	filterChain  []filterRegistration
	servletChain []servletRegistration
	stats        *Stats

	mu         sync.Mutex
	state      State
	httpServer *http.Server
	listener   net.Listener
}

// New assembles a server from the provided options. Assembly is
// deterministic and performs no network I/O; binding happens on Start.
//
// Construction fails with ErrInvalidConfig when no InstanceProvider is
// configured or the port is out of range, and with ErrAssembly when a
// registration cannot be installed. There is no partial assembly: any
// failure means no server.
func New(opts ...Option) (*Server, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Provider == nil {
		return nil, fmt.Errorf("%w: instance provider is required", ErrInvalidConfig)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range 0-65535", ErrInvalidConfig, cfg.Port)
	}
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Name == "" {
		cfg.Name = "gangway"
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
	}
	if err := s.assemble(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the assembled handler graph. Useful for tests and for
// embedding the assembled chain into another server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Provider returns the configured InstanceProvider.
func (s *Server) Provider() InstanceProvider {
	return s.cfg.Provider
}

// Host returns the configured bind address.
func (s *Server) Host() string {
	return s.cfg.Host
}

// Port returns the configured bind port. For port 0 the actual bound
// port is available from Addr after Start.
func (s *Server) Port() int {
	return s.cfg.Port
}

// Name returns the configured server name.
func (s *Server) Name() string {
	return s.cfg.Name
}

// StaticFiles returns a copy of the static files configuration, or nil
// when none is configured.
func (s *Server) StaticFiles() *StaticFilesConfig {
	if s.cfg.StaticFiles == nil {
		return nil
	}
	sf := *s.cfg.StaticFiles
	return &sf
}

// Filters returns a copy of the caller-supplied filter registrations in
// their original order.
func (s *Server) Filters() []FilterConfig {
	filters := make([]FilterConfig, len(s.cfg.Filters))
	copy(filters, s.cfg.Filters)
	return filters
}

// Servlets returns a copy of the caller-supplied servlet registrations
// in their original order.
func (s *Server) Servlets() []ServletConfig {
	servlets := make([]ServletConfig, len(s.cfg.Servlets))
	copy(servlets, s.cfg.Servlets)
	return servlets
}

// WebSockets returns a copy of the WebSocket endpoint registrations in
// their original order.
func (s *Server) WebSockets() []WebSocketConfig {
	endpoints := make([]WebSocketConfig, len(s.cfg.WebSockets))
	copy(endpoints, s.cfg.WebSockets)
	return endpoints
}

// Stats returns the stats collector, or nil when WithStats was not
// configured. Expose Stats.Handler() on a route to serve the metrics.
func (s *Server) Stats() *Stats {
	return s.stats
}
