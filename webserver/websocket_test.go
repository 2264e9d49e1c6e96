package webserver_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gangwaylabs/gangway-go/webserver"
)

// echoEndpoint writes every text message straight back.
type echoEndpoint struct {
	opened chan struct{}
	closed chan struct{}
}

func (e *echoEndpoint) OnOpen(_ *websocket.Conn, _ *http.Request) {
	close(e.opened)
}

func (e *echoEndpoint) OnMessage(conn *websocket.Conn, messageType int, data []byte) {
	_ = conn.WriteMessage(messageType, data)
}

func (e *echoEndpoint) OnClose(_ *websocket.Conn, _ error) {
	close(e.closed)
}

// pathedEchoEndpoint carries its own endpoint URL.
type pathedEchoEndpoint struct {
	echoEndpoint
}

func (e *pathedEchoEndpoint) EndpointPath() string {
	return "/ws/pathed"
}

func TestWebSockets(t *testing.T) {
	t.Parallel()

	t.Run("given a registered endpoint, then messages are echoed over the upgraded connection", func(t *testing.T) {
		t.Parallel()

		endpoint := &echoEndpoint{opened: make(chan struct{}), closed: make(chan struct{})}
		registry := newTestRegistry()
		registry.RegisterInstance("test.echo", endpoint)

		server, err := webserver.New(
			webserver.WithProvider(registry),
			webserver.WithLogger(zerolog.New(io.Discard).Level(zerolog.ErrorLevel)),
			webserver.WithWebSockets(webserver.WebSocketConfig{Type: "test.echo", Path: "/ws/echo"}),
		)
		require.NoError(t, err)

		ts := httptest.NewServer(server.Handler())
		defer ts.Close()

		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/echo"
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer resp.Body.Close()

		select {
		case <-endpoint.opened:
		case <-time.After(time.Second):
			t.Fatal("endpoint was never opened")
		}

		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
		messageType, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Equal(t, websocket.TextMessage, messageType)
		assert.Equal(t, "hello", string(data))

		require.NoError(t, conn.Close())
		select {
		case <-endpoint.closed:
		case <-time.After(time.Second):
			t.Fatal("endpoint was never closed")
		}
	})

	t.Run("given no explicit path, then the endpoint's own path is used", func(t *testing.T) {
		t.Parallel()

		endpoint := &pathedEchoEndpoint{echoEndpoint{opened: make(chan struct{}), closed: make(chan struct{})}}
		registry := newTestRegistry()
		registry.RegisterInstance("test.pathed", endpoint)

		server, err := webserver.New(
			webserver.WithProvider(registry),
			webserver.WithLogger(zerolog.New(io.Discard).Level(zerolog.ErrorLevel)),
			webserver.WithWebSockets(webserver.WebSocketConfig{Type: "test.pathed"}),
		)
		require.NoError(t, err)

		require.Len(t, server.WebSockets(), 1)

		ts := httptest.NewServer(server.Handler())
		defer ts.Close()

		url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/pathed"
		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.NoError(t, conn.Close())
	})

	t.Run("given no path at all, then New fails with ErrAssembly", func(t *testing.T) {
		t.Parallel()

		endpoint := &echoEndpoint{opened: make(chan struct{}), closed: make(chan struct{})}
		registry := newTestRegistry()
		registry.RegisterInstance("test.pathless", endpoint)

		_, err := webserver.New(
			webserver.WithProvider(registry),
			webserver.WithWebSockets(webserver.WebSocketConfig{Type: "test.pathless"}),
		)
		require.ErrorIs(t, err, webserver.ErrAssembly)
	})

	t.Run("given a plain GET on the endpoint path, then the upgrade is refused", func(t *testing.T) {
		t.Parallel()

		endpoint := &echoEndpoint{opened: make(chan struct{}), closed: make(chan struct{})}
		registry := newTestRegistry()
		registry.RegisterInstance("test.echo", endpoint)

		server, err := webserver.New(
			webserver.WithProvider(registry),
			webserver.WithLogger(zerolog.New(io.Discard).Level(zerolog.ErrorLevel)),
			webserver.WithWebSockets(webserver.WebSocketConfig{Type: "test.echo", Path: "/ws/echo"}),
		)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws/echo", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
