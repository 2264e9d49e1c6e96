// Package gin integrates Gin engines with the webserver container.
//
// A Gin engine implements http.Handler, so RegisterRouting installs it
// as the routing servlet directly. WrapMiddleware lowers container
// middleware onto Gin's handler shape so the same code can also run
// inside a Gin route group.
//
// # Quick Start
//
//	engine := ginlib.New()
//	engine.GET("/users/:id", getUser)
//
//	registry := webserver.NewRegistry()
//	gingangway.RegisterRouting(registry, engine)
package gin

import (
	"net/http"

	ginlib "github.com/gin-gonic/gin"

	"github.com/gangwaylabs/gangway-go/webserver"
)

// RegisterRouting installs the engine as the routing servlet.
//
//	gingangway.RegisterRouting(registry, engine)
func RegisterRouting(registry *webserver.Registry, engine *ginlib.Engine) {
	registry.RegisterInstance(webserver.TypeRoutingServlet, engine)
}

// WrapMiddleware adapts container middleware to Gin middleware.
//
//	engine.Use(gingangway.WrapMiddleware(myCustomMiddleware))
func WrapMiddleware(m webserver.Middleware) ginlib.HandlerFunc {
	return func(c *ginlib.Context) {
		var aborted bool
		handler := m(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
			aborted = c.IsAborted()
		}))
		handler.ServeHTTP(c.Writer, c.Request)
		if aborted {
			c.Abort()
		}
	}
}

// WrapHandler wraps an http.Handler as a Gin handler.
//
//	engine.GET("/custom", gingangway.WrapHandler(myHandler))
func WrapHandler(h http.Handler) ginlib.HandlerFunc {
	return func(c *ginlib.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// RequestID returns Gin middleware that generates/forwards X-Request-ID.
func RequestID() ginlib.HandlerFunc {
	return WrapMiddleware(webserver.RequestID())
}

// QoS returns Gin middleware for token bucket admission control.
//
//	engine.Use(gingangway.QoS(webserver.QoSConfig{Limit: 100, Burst: 200}))
func QoS(cfg webserver.QoSConfig) ginlib.HandlerFunc {
	return WrapMiddleware(webserver.QoS(cfg))
}

// RequestLog returns Gin middleware for structured request logging.
func RequestLog(cfg webserver.RequestLogConfig) ginlib.HandlerFunc {
	return WrapMiddleware(webserver.RequestLog(cfg))
}

// Tracing returns Gin middleware for OpenTelemetry tracing.
func Tracing(cfg webserver.TracingConfig) ginlib.HandlerFunc {
	return WrapMiddleware(webserver.Tracing(cfg))
}

// RegisterMetrics registers the Prometheus metrics endpoint.
//
//	gingangway.RegisterMetrics(engine, stats, "/metrics")
func RegisterMetrics(engine *ginlib.Engine, stats *webserver.Stats, path string) {
	if path == "" {
		path = "/metrics"
	}
	engine.GET(path, WrapHandler(stats.Handler()))
}
