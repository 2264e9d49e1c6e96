package webserver

import "net/http"

// Middleware is a function that wraps an http.Handler. The container
// services (request log, request ID, stats, tracing, QoS) are expressed
// as middleware and composed with Chain; the filter chain itself is also
// lowered onto this shape during assembly.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware into one. Middleware are applied in the order
// provided: the first is outermost, running first on the request and last
// on the response.
func Chain(middlewares ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
