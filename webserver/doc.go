// Package webserver binds a minimalist web framework's filters, servlets,
// and routing entry point onto net/http's embeddable server.
//
// The package does not route requests itself. It assembles the underlying
// server's object graph from a declarative configuration - filter chain,
// servlet chain, static file serving, WebSocket endpoints, connector - and
// exposes a two-method lifecycle (Start/Stop) plus passthrough accessors.
// All request handling is delegated to handler instances supplied by an
// InstanceProvider.
//
// # Quick Start
//
//	registry := webserver.NewRegistry()
//	registry.RegisterInstance(webserver.TypeDispatchFilter, dispatchFilter)
//	registry.RegisterInstance(webserver.TypeContextSyncFilter, syncFilter)
//	registry.RegisterInstance(webserver.TypeRoutingServlet, router)
//
//	server, err := webserver.New(
//	    webserver.WithProvider(registry),
//	    webserver.WithPort(8888),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := server.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Stop(ctx)
//
// # Provider Contract
//
// The InstanceProvider must be able to supply instances for three
// well-known types on every server:
//
//   - TypeDispatchFilter: the framework's dispatch filter, installed first
//     in the filter chain at /*.
//   - TypeContextSyncFilter: the framework's request-context sync filter,
//     installed last in the filter chain at /*.
//   - TypeRoutingServlet: the framework's routing entry point, installed
//     last in the servlet chain at /*.
//
// When static file serving is configured, TypeResponseHandler must also be
// resolvable: it renders framework-style responses for intercepted 404s.
//
// # Chain Ordering
//
// Caller-supplied registrations keep their order exactly as supplied.
// Assembly only prepends and appends the well-known entries:
//
//	filters:  [dispatch filter] + caller filters + [context sync filter]
//	servlets: [static servlet?] + caller servlets + [websockets] + [routing servlet]
//
// # Static Files
//
// An optional StaticFilesConfig maps a URL pattern onto a root directory
// and selects a cache strategy (CacheForever, CacheNever, CacheDefault)
// applied to every served response. Directory listings are disabled. When
// static files are configured, 404s are rewritten through the framework's
// ResponseHandler instead of the default error page.
//
// # Container Services
//
// Orthogonal to the assembled chains, the server can carry access logging
// (WithRequestLog), request IDs (WithRequestID), Prometheus statistics
// (WithStats), OpenTelemetry tracing (WithTracing), and token-bucket
// admission control (WithQoS). These wrap the whole chain and never reorder
// caller registrations.
//
// # Framework Adapters
//
// Adapters bind popular routers as the routing servlet collaborator:
//
//	import "github.com/gangwaylabs/gangway-go/webserver/adapters/chi"
//	import "github.com/gangwaylabs/gangway-go/webserver/adapters/gin"
//	import "github.com/gangwaylabs/gangway-go/webserver/adapters/echo"
//	import "github.com/gangwaylabs/gangway-go/webserver/adapters/fiber"
package webserver
