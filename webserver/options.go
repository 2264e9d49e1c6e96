package webserver

import (
	"net"
	"net/http"

	"github.com/rs/zerolog"
)

// Option configures the server at construction time.
type Option func(*Config)

// WithConfig applies all settings from a Config struct. Use DefaultConfig
// as a starting point and override fields, then layer further options on
// top.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithProvider sets the InstanceProvider. Required: construction fails
// with ErrInvalidConfig when no provider is configured.
func WithProvider(p InstanceProvider) Option {
	return func(c *Config) {
		c.Provider = p
	}
}

// WithHost sets the bind address (default "0.0.0.0").
func WithHost(host string) Option {
	return func(c *Config) {
		c.Host = host
	}
}

// WithPort sets the bind port (default 8888). Port 0 binds an ephemeral
// port.
func WithPort(port int) Option {
	return func(c *Config) {
		c.Port = port
	}
}

// WithName sets the server name used in logs, stats, and traces.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithStaticFiles enables static file serving for cfg.URLPattern out of
// cfg.RootDir. At most one static files configuration is accepted.
func WithStaticFiles(cfg StaticFilesConfig) Option {
	return func(c *Config) {
		c.StaticFiles = &cfg
	}
}

// WithFilters appends filter registrations. Order is preserved: the
// assembled chain is the dispatch filter, then these in supplied order,
// then the context sync filter.
func WithFilters(filters ...FilterConfig) Option {
	return func(c *Config) {
		c.Filters = append(c.Filters, filters...)
	}
}

// WithServlets appends servlet registrations, installed between the
// static servlet (if any) and the routing servlet, in supplied order.
func WithServlets(servlets ...ServletConfig) Option {
	return func(c *Config) {
		c.Servlets = append(c.Servlets, servlets...)
	}
}

// WithWebSockets appends WebSocket endpoint registrations.
func WithWebSockets(endpoints ...WebSocketConfig) Option {
	return func(c *Config) {
		c.WebSockets = append(c.WebSockets, endpoints...)
	}
}

// WithLogger sets the logger for lifecycle events (start, stop, shutdown
// failures). For per-request logging use WithRequestLog.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithRequestLog enables the structured access log service.
func WithRequestLog(cfg RequestLogConfig) Option {
	return func(c *Config) {
		c.RequestLog = &cfg
	}
}

// WithRequestID enables X-Request-ID generation and forwarding.
func WithRequestID() Option {
	return func(c *Config) {
		c.RequestID = true
	}
}

// WithStats enables Prometheus request statistics.
func WithStats(cfg StatsConfig) Option {
	return func(c *Config) {
		c.Stats = &cfg
	}
}

// WithTracing enables OpenTelemetry tracing for dispatched requests.
func WithTracing(cfg TracingConfig) Option {
	return func(c *Config) {
		c.Tracing = &cfg
	}
}

// WithQoS enables token-bucket admission control ahead of the filter
// chain.
func WithQoS(cfg QoSConfig) Option {
	return func(c *Config) {
		c.QoS = &cfg
	}
}

// WithConfigureServer registers a hook that receives the underlying
// *http.Server just before it starts serving.
func WithConfigureServer(fn func(*http.Server)) Option {
	return func(c *Config) {
		c.ConfigureServer = fn
	}
}

// WithWrapListener registers a hook that wraps the bound listener before
// serving begins, e.g. for connection limiting or TLS.
func WithWrapListener(fn func(net.Listener) net.Listener) Option {
	return func(c *Config) {
		c.WrapListener = fn
	}
}
