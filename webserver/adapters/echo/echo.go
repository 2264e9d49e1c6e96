// Package echo integrates Echo instances with the webserver container.
//
// An Echo instance implements http.Handler, so RegisterRouting installs
// it as the routing servlet directly. WrapMiddleware lowers container
// middleware onto Echo's middleware shape.
//
// # Quick Start
//
//	e := echolib.New()
//	e.GET("/users/:id", getUser)
//
//	registry := webserver.NewRegistry()
//	echogangway.RegisterRouting(registry, e)
package echo

import (
	"net/http"

	echolib "github.com/labstack/echo/v4"

	"github.com/gangwaylabs/gangway-go/webserver"
)

// RegisterRouting installs the Echo instance as the routing servlet.
//
//	echogangway.RegisterRouting(registry, e)
func RegisterRouting(registry *webserver.Registry, e *echolib.Echo) {
	registry.RegisterInstance(webserver.TypeRoutingServlet, e)
}

// WrapMiddleware adapts container middleware to Echo middleware.
//
//	e.Use(echogangway.WrapMiddleware(myCustomMiddleware))
func WrapMiddleware(m webserver.Middleware) echolib.MiddlewareFunc {
	return func(next echolib.HandlerFunc) echolib.HandlerFunc {
		return func(c echolib.Context) error {
			var err error
			handler := m(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				c.SetRequest(r)
				err = next(c)
			}))
			handler.ServeHTTP(c.Response(), c.Request())
			return err
		}
	}
}

// WrapHandler wraps an http.Handler as an Echo handler.
//
//	e.GET("/custom", echogangway.WrapHandler(myHandler))
func WrapHandler(h http.Handler) echolib.HandlerFunc {
	return echolib.WrapHandler(h)
}

// RequestID returns Echo middleware that generates/forwards X-Request-ID.
func RequestID() echolib.MiddlewareFunc {
	return WrapMiddleware(webserver.RequestID())
}

// QoS returns Echo middleware for token bucket admission control.
//
//	e.Use(echogangway.QoS(webserver.QoSConfig{Limit: 100, Burst: 200}))
func QoS(cfg webserver.QoSConfig) echolib.MiddlewareFunc {
	return WrapMiddleware(webserver.QoS(cfg))
}

// RequestLog returns Echo middleware for structured request logging.
func RequestLog(cfg webserver.RequestLogConfig) echolib.MiddlewareFunc {
	return WrapMiddleware(webserver.RequestLog(cfg))
}

// Tracing returns Echo middleware for OpenTelemetry tracing.
func Tracing(cfg webserver.TracingConfig) echolib.MiddlewareFunc {
	return WrapMiddleware(webserver.Tracing(cfg))
}

// RegisterMetrics registers the Prometheus metrics endpoint.
//
//	echogangway.RegisterMetrics(e, stats, "/metrics")
func RegisterMetrics(e *echolib.Echo, stats *webserver.Stats, path string) {
	if path == "" {
		path = "/metrics"
	}
	e.GET(path, WrapHandler(stats.Handler()))
}
