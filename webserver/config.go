package webserver

import (
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// CacheStrategy selects the cache headers attached to static file
// responses. The strategy only affects response headers, never file
// resolution or byte serving.
type CacheStrategy string

const (
	// CacheDefault injects no cache headers; net/http's native behavior
	// applies.
	CacheDefault CacheStrategy = "DEFAULT"

	// CacheForever marks every served response cacheable for one year.
	CacheForever CacheStrategy = "FOREVER"

	// CacheNever marks every served response explicitly uncacheable.
	CacheNever CacheStrategy = "NEVER"
)

// StaticFilesConfig maps a URL pattern onto a filesystem directory. At
// most one static files configuration exists per server.
type StaticFilesConfig struct {
	// URLPattern is the servlet-style pattern the static servlet is
	// bound to, e.g. "/static/*".
	URLPattern string

	// RootDir is the directory files are served from. Resolved to an
	// absolute path during assembly.
	RootDir string

	// CacheStrategy controls cache headers on served responses.
	// Defaults to CacheDefault.
	CacheStrategy CacheStrategy
}

// FilterConfig registers one filter. Caller-supplied order is significant:
// first registered is first invoked.
type FilterConfig struct {
	// Type is resolved through the InstanceProvider; the instance must
	// implement Filter.
	Type HandlerType

	// URLPattern limits which requests the filter sees.
	URLPattern string

	// InitParams are delivered via Initializer at install time, when
	// the instance implements it.
	InitParams map[string]string

	// Dispatches lists the dispatch phases the filter participates in.
	// Empty means DispatchRequest only.
	Dispatches []DispatchType
}

// ServletConfig registers one servlet. The resolved instance must
// implement http.Handler.
type ServletConfig struct {
	Type       HandlerType
	URLPattern string
	InitParams map[string]string
}

// WebSocketConfig registers one WebSocket endpoint. The resolved instance
// must implement WebSocketEndpoint; a fresh instance is provided per
// connection.
type WebSocketConfig struct {
	Type HandlerType

	// Path is the exact URL the endpoint is served at. When empty, the
	// endpoint instance must implement PathedEndpoint and its
	// EndpointPath result is used instead.
	Path string

	// CheckOrigin overrides the upgrader's origin check. Nil applies
	// gorilla/websocket's same-origin default.
	CheckOrigin func(r *http.Request) bool
}

// Config holds everything assembly consumes. It is read exactly once, by
// New; nothing mutates it afterwards and accessors on Server return
// copies.
type Config struct {
	// Provider supplies every handler instance. Required.
	Provider InstanceProvider

	// Host is the bind address (default "0.0.0.0").
	Host string

	// Port is the bind port (default 8888). 0 binds an ephemeral port;
	// read it back with Server.Addr after Start.
	Port int

	// Name identifies the server in logs, stats, and traces.
	// Default: "gangway".
	Name string

	// StaticFiles optionally enables static file serving.
	StaticFiles *StaticFilesConfig

	// Filters, Servlets, and WebSockets are the caller-supplied
	// registration lists. Order is preserved verbatim.
	Filters    []FilterConfig
	Servlets   []ServletConfig
	WebSockets []WebSocketConfig

	// Logger receives lifecycle events. A disabled logger is replaced
	// with a default stdout logger.
	Logger zerolog.Logger

	// Connector timeouts, passed through to the underlying server.
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	// ShutdownTimeout bounds the graceful drain during Stop.
	ShutdownTimeout time.Duration

	// RequestLog enables the access log service.
	RequestLog *RequestLogConfig

	// RequestID enables X-Request-ID generation/forwarding.
	RequestID bool

	// Stats enables Prometheus request statistics.
	Stats *StatsConfig

	// Tracing enables OpenTelemetry server spans.
	Tracing *TracingConfig

	// QoS enables token-bucket admission control.
	QoS *QoSConfig

	// ConfigureServer, when set, gets the last word on the underlying
	// *http.Server before it starts serving.
	ConfigureServer func(*http.Server)

	// WrapListener, when set, wraps the bound listener before serving
	// begins.
	WrapListener func(net.Listener) net.Listener
}

// DefaultConfig returns the fixed defaults: host "0.0.0.0", port 8888,
// empty registration lists, and connector timeouts suitable for most
// deployments.
func DefaultConfig() Config {
	return Config{
		Host:              "0.0.0.0",
		Port:              8888,
		Name:              "gangway",
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MB
		ShutdownTimeout:   10 * time.Second,
	}
}
