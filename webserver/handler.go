package webserver

import "net/http"

// HandlerType identifies a handler kind to the InstanceProvider. The
// framework collaborators a server always needs are published as the
// well-known constants below; callers use their own keys for everything
// they register themselves.
type HandlerType string

// Well-known handler types resolved through the InstanceProvider during
// assembly.
const (
	// TypeDispatchFilter is the framework dispatch filter, prepended to
	// the filter chain at /*. When static files are configured, its
	// init parameters carry the static URL pattern under
	// StaticFilesURLPatternParam.
	TypeDispatchFilter HandlerType = "gangway.dispatchFilter"

	// TypeContextSyncFilter is the framework request-context sync
	// filter, appended to the filter chain at /*.
	TypeContextSyncFilter HandlerType = "gangway.contextSyncFilter"

	// TypeRoutingServlet is the framework routing entry point, appended
	// to the servlet chain at /*.
	TypeRoutingServlet HandlerType = "gangway.routingServlet"

	// TypeResponseHandler renders framework-style responses for
	// intercepted static-file 404s. Only resolved when static files are
	// configured, and only at interception time.
	TypeResponseHandler HandlerType = "gangway.responseHandler"
)

// StaticFilesURLPatternParam is the init-parameter key under which the
// dispatch filter receives the static files URL pattern. The value is the
// empty string when no static files are configured.
const StaticFilesURLPatternParam = "staticFilesUrlPattern"

// DispatchType names the dispatch phases a filter participates in.
type DispatchType uint8

const (
	// DispatchRequest is the ordinary request dispatch. Filters with no
	// declared dispatch types run in this phase only.
	DispatchRequest DispatchType = iota

	// DispatchError is the not-found interception dispatch: filters
	// declaring it run around the ResponseHandler invocation for
	// intercepted 404s.
	DispatchError
)

// Filter inspects or modifies a request before the matching servlet runs.
// Implementations must call chain.ServeHTTP to continue processing; not
// calling it short-circuits the request.
//
// Instances come from the InstanceProvider. An instance that also
// implements Initializer receives its init parameters once, at install
// time.
type Filter interface {
	HandleRequest(w http.ResponseWriter, r *http.Request, chain http.Handler)
}

// A servlet is any http.Handler: the instance the provider returns for a
// ServletConfig must satisfy http.Handler.

// Initializer is implemented by filter and servlet instances that want
// their init parameters delivered at install time. An Init error aborts
// assembly.
type Initializer interface {
	Init(params map[string]string) error
}

// Route describes a framework route. The shim never inspects routes; the
// type exists so ResponseHandler can be invoked with an explicit empty
// route for synthesized responses.
type Route struct {
	Method  string
	Pattern string
}

// ResponseHandler is the framework's response pipeline, resolved under
// TypeResponseHandler. For an intercepted static-file 404 it is invoked
// with a nil route, nil body, and nil error.
type ResponseHandler interface {
	HandleResponse(w http.ResponseWriter, r *http.Request, route *Route, body any, handlerErr error)
}
