// Package fiber integrates Fiber apps with the webserver container.
//
// Fiber runs on fasthttp, not net/http, so this adapter bridges the gap
// with gofiber's adaptor package: RegisterRouting wraps the app in a
// net/http handler before installing it as the routing servlet, and
// WrapMiddleware lowers container middleware onto Fiber's handler
// shape.
//
// # Quick Start
//
//	app := fiberlib.New()
//	app.Get("/users/:id", getUser)
//
//	registry := webserver.NewRegistry()
//	fibergangway.RegisterRouting(registry, app)
package fiber

import (
	"net/http"

	fiberlib "github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/gangwaylabs/gangway-go/webserver"
)

// RegisterRouting installs the app as the routing servlet, bridged to
// net/http.
//
//	fibergangway.RegisterRouting(registry, app)
func RegisterRouting(registry *webserver.Registry, app *fiberlib.App) {
	registry.RegisterInstance(webserver.TypeRoutingServlet, adaptor.FiberApp(app))
}

// WrapMiddleware adapts container middleware to Fiber middleware.
//
//	app.Use(fibergangway.WrapMiddleware(myCustomMiddleware))
func WrapMiddleware(m webserver.Middleware) fiberlib.Handler {
	return adaptor.HTTPMiddleware(func(next http.Handler) http.Handler {
		return m(next)
	})
}

// WrapHandler wraps an http.Handler as a Fiber handler.
//
//	app.Get("/custom", fibergangway.WrapHandler(myHandler))
func WrapHandler(h http.Handler) fiberlib.Handler {
	return adaptor.HTTPHandler(h)
}

// RequestID returns Fiber middleware that generates/forwards X-Request-ID.
func RequestID() fiberlib.Handler {
	return WrapMiddleware(webserver.RequestID())
}

// QoS returns Fiber middleware for token bucket admission control.
//
//	app.Use(fibergangway.QoS(webserver.QoSConfig{Limit: 100, Burst: 200}))
func QoS(cfg webserver.QoSConfig) fiberlib.Handler {
	return WrapMiddleware(webserver.QoS(cfg))
}

// RequestLog returns Fiber middleware for structured request logging.
func RequestLog(cfg webserver.RequestLogConfig) fiberlib.Handler {
	return WrapMiddleware(webserver.RequestLog(cfg))
}

// RegisterMetrics registers the Prometheus metrics endpoint.
//
//	fibergangway.RegisterMetrics(app, stats, "/metrics")
func RegisterMetrics(app *fiberlib.App, stats *webserver.Stats, path string) {
	if path == "" {
		path = "/metrics"
	}
	app.Get(path, WrapHandler(stats.Handler()))
}
