// Package chi integrates chi routers with the webserver container.
//
// A chi router is a plain http.Handler, so it can act as the routing
// servlet directly; RegisterRouting installs it under the well-known
// routing servlet type. Container middleware and chi middleware share
// the func(http.Handler) http.Handler shape, so WrapMiddleware is the
// identity and exists for symmetry with the other adapters.
//
// # Quick Start
//
//	router := chilib.NewRouter()
//	router.Get("/users/{id}", getUser)
//
//	registry := webserver.NewRegistry()
//	chigangway.RegisterRouting(registry, router)
package chi

import (
	"net/http"

	chilib "github.com/go-chi/chi/v5"

	"github.com/gangwaylabs/gangway-go/webserver"
)

// RegisterRouting installs the router as the routing servlet.
//
//	chigangway.RegisterRouting(registry, router)
func RegisterRouting(registry *webserver.Registry, router chilib.Router) {
	registry.RegisterInstance(webserver.TypeRoutingServlet, router)
}

// WrapMiddleware adapts container middleware to chi middleware.
//
//	router.Use(chigangway.WrapMiddleware(webserver.RequestID()))
func WrapMiddleware(m webserver.Middleware) func(http.Handler) http.Handler {
	return m
}

// RequestID returns chi middleware that generates/forwards X-Request-ID.
func RequestID() func(http.Handler) http.Handler {
	return WrapMiddleware(webserver.RequestID())
}

// QoS returns chi middleware for token bucket admission control.
func QoS(cfg webserver.QoSConfig) func(http.Handler) http.Handler {
	return WrapMiddleware(webserver.QoS(cfg))
}

// RegisterMetrics registers the Prometheus metrics endpoint.
//
//	chigangway.RegisterMetrics(router, stats, "/metrics")
func RegisterMetrics(router chilib.Router, stats *webserver.Stats, path string) {
	if path == "" {
		path = "/metrics"
	}
	router.Get(path, stats.Handler().ServeHTTP)
}
