package webserver_test

import (
	"fmt"
	"net/http"

	"github.com/gangwaylabs/gangway-go/webserver"
)

// filterFunc adapts a function to webserver.Filter.
type filterFunc func(w http.ResponseWriter, r *http.Request, chain http.Handler)

func (f filterFunc) HandleRequest(w http.ResponseWriter, r *http.Request, chain http.Handler) {
	f(w, r, chain)
}

// passFilter continues the chain untouched.
func passFilter() webserver.Filter {
	return filterFunc(func(w http.ResponseWriter, r *http.Request, chain http.Handler) {
		chain.ServeHTTP(w, r)
	})
}

// traceFilter appends name-before/name-after around the chain.
func traceFilter(name string, order *[]string) webserver.Filter {
	return filterFunc(func(w http.ResponseWriter, r *http.Request, chain http.Handler) {
		*order = append(*order, name+"-before")
		chain.ServeHTTP(w, r)
		*order = append(*order, name+"-after")
	})
}

// initRecordingFilter is a pass-through filter that remembers its init
// parameters.
type initRecordingFilter struct {
	params map[string]string
}

func (f *initRecordingFilter) Init(params map[string]string) error {
	f.params = params
	return nil
}

func (f *initRecordingFilter) HandleRequest(w http.ResponseWriter, r *http.Request, chain http.Handler) {
	chain.ServeHTTP(w, r)
}

// textServlet answers every request with a fixed body.
func textServlet(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	})
}

// newTestRegistry returns a registry with the three mandatory framework
// collaborators registered. The routing servlet answers "routed".
func newTestRegistry() *webserver.Registry {
	registry := webserver.NewRegistry()
	registry.RegisterInstance(webserver.TypeDispatchFilter, passFilter())
	registry.RegisterInstance(webserver.TypeContextSyncFilter, passFilter())
	registry.RegisterInstance(webserver.TypeRoutingServlet, textServlet("routed"))
	return registry
}

// responseHandlerFunc adapts a function to webserver.ResponseHandler.
type responseHandlerFunc func(w http.ResponseWriter, r *http.Request, route *webserver.Route, body any, handlerErr error)

func (f responseHandlerFunc) HandleResponse(w http.ResponseWriter, r *http.Request, route *webserver.Route, body any, handlerErr error) {
	f(w, r, route, body, handlerErr)
}
