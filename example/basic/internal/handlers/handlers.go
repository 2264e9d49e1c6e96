// Package handlers supplies the framework collaborators the example
// registers with the container: the dispatch and context sync filters,
// the chi routing servlet, the not-found response handler, and a
// WebSocket echo endpoint.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gangwaylabs/gangway-go/webserver"
)

// DispatchFilter is the outermost filter. It notes the static files URL
// pattern it was initialized with and stamps a timing header on every
// response.
type DispatchFilter struct {
	logger        zerolog.Logger
	staticPattern string
}

func NewDispatchFilter(logger zerolog.Logger) *DispatchFilter {
	return &DispatchFilter{logger: logger}
}

func (f *DispatchFilter) Init(params map[string]string) error {
	f.staticPattern = params[webserver.StaticFilesURLPatternParam]
	f.logger.Info().Str("static_pattern", f.staticPattern).Msg("dispatch filter initialized")
	return nil
}

func (f *DispatchFilter) HandleRequest(w http.ResponseWriter, r *http.Request, chain http.Handler) {
	start := time.Now()
	chain.ServeHTTP(w, r)
	f.logger.Debug().
		Str("path", r.URL.Path).
		Dur("elapsed", time.Since(start)).
		Msg("request dispatched")
}

// ContextSyncFilter runs innermost, immediately around the servlet
// dispatch. A real application would bind request-scoped state here.
type ContextSyncFilter struct {
	logger zerolog.Logger
}

func NewContextSyncFilter(logger zerolog.Logger) *ContextSyncFilter {
	return &ContextSyncFilter{logger: logger}
}

func (f *ContextSyncFilter) HandleRequest(w http.ResponseWriter, r *http.Request, chain http.Handler) {
	chain.ServeHTTP(w, r)
}

// NewRouter builds the chi router that acts as the routing servlet.
func NewRouter() chi.Router {
	router := chi.NewRouter()

	router.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		webserver.WriteJSON(w, http.StatusOK, webserver.Response[map[string]string]{
			Data: map[string]string{"service": "gangway-example"},
		})
	})

	router.Get("/greetings/{name}", func(w http.ResponseWriter, r *http.Request) {
		webserver.WriteJSON(w, http.StatusOK, webserver.Response[map[string]string]{
			Data: map[string]string{"greeting": "hello, " + chi.URLParam(r, "name")},
		})
	})

	return router
}

// NotFoundHandler answers intercepted 404s with the JSON envelope the
// rest of the API uses.
type NotFoundHandler struct{}

func (NotFoundHandler) HandleResponse(w http.ResponseWriter, r *http.Request, _ *webserver.Route, _ any, _ error) {
	webserver.WriteError(w, http.StatusNotFound, "no such resource",
		webserver.Error{Field: "path", Message: r.URL.Path})
}

// EchoEndpoint echoes every WebSocket message back to the sender. The
// container provides a fresh instance per connection.
type EchoEndpoint struct {
	logger   zerolog.Logger
	received int
}

func NewEchoEndpoint(logger zerolog.Logger) *EchoEndpoint {
	return &EchoEndpoint{logger: logger}
}

func (e *EchoEndpoint) EndpointPath() string {
	return "/ws/echo"
}

func (e *EchoEndpoint) OnOpen(conn *websocket.Conn, _ *http.Request) {
	e.logger.Info().Str("remote", conn.RemoteAddr().String()).Msg("websocket opened")
}

func (e *EchoEndpoint) OnMessage(conn *websocket.Conn, messageType int, data []byte) {
	e.received++
	if err := conn.WriteMessage(messageType, data); err != nil {
		e.logger.Error().Err(err).Msg("echo write failed")
	}
}

func (e *EchoEndpoint) OnClose(conn *websocket.Conn, _ error) {
	e.logger.Info().
		Str("remote", conn.RemoteAddr().String()).
		Int("messages", e.received).
		Msg("websocket closed")
}
