package webserver

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WebSocketEndpoint receives the events of one WebSocket connection. The
// InstanceProvider supplies a fresh instance per connection, so
// implementations may keep per-connection state in their fields.
//
// OnMessage is called from the connection's read loop; OnClose is called
// exactly once, with the read error that ended the connection.
type WebSocketEndpoint interface {
	OnOpen(conn *websocket.Conn, r *http.Request)
	OnMessage(conn *websocket.Conn, messageType int, data []byte)
	OnClose(conn *websocket.Conn, err error)
}

// PathedEndpoint supplies the endpoint URL when a WebSocketConfig leaves
// Path empty. The explicit capability method replaces metadata lookup on
// the handler type.
type PathedEndpoint interface {
	EndpointPath() string
}

// webSocketServlet upgrades matching requests and drives the endpoint's
// read loop. One instance serves one registered endpoint path.
type webSocketServlet struct {
	provider InstanceProvider
	typ      HandlerType
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

func newWebSocketServlet(provider InstanceProvider, cfg WebSocketConfig, logger zerolog.Logger) *webSocketServlet {
	return &webSocketServlet{
		provider: provider,
		typ:      cfg.Type,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		logger: logger,
	}
}

func (s *webSocketServlet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	instance, err := s.provider.Provide(s.typ)
	if err != nil {
		s.logger.Error().Err(err).Str("type", string(s.typ)).Msg("websocket endpoint unavailable")
		WriteError(w, http.StatusInternalServerError, "websocket endpoint unavailable")
		return
	}
	endpoint, ok := instance.(WebSocketEndpoint)
	if !ok {
		s.logger.Error().Str("type", string(s.typ)).Msg("provided instance does not implement WebSocketEndpoint")
		WriteError(w, http.StatusInternalServerError, "websocket endpoint unavailable")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("websocket upgrade failed")
		return
	}

	endpoint.OnOpen(conn, r)

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			endpoint.OnClose(conn, err)
			conn.Close()
			return
		}
		endpoint.OnMessage(conn, messageType, data)
	}
}
