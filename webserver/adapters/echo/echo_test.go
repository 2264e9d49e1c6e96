package echo_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	echolib "github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gangwaylabs/gangway-go/webserver"
	echogangway "github.com/gangwaylabs/gangway-go/webserver/adapters/echo"
)

type passFilter struct{}

func (passFilter) HandleRequest(w http.ResponseWriter, r *http.Request, chain http.Handler) {
	chain.ServeHTTP(w, r)
}

func TestRegisterRouting(t *testing.T) {
	t.Parallel()

	t.Run("given an Echo instance, when registered, then it serves as the routing servlet", func(t *testing.T) {
		e := echolib.New()
		e.GET("/users/:id", func(c echolib.Context) error {
			return c.String(http.StatusOK, "user "+c.Param("id"))
		})

		registry := webserver.NewRegistry()
		registry.RegisterInstance(webserver.TypeDispatchFilter, passFilter{})
		registry.RegisterInstance(webserver.TypeContextSyncFilter, passFilter{})
		echogangway.RegisterRouting(registry, e)

		server, err := webserver.New(webserver.WithProvider(registry))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/42", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user 42", rec.Body.String())
	})
}

func TestWrapMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("given container middleware, when wrapped, then works with Echo", func(t *testing.T) {
		e := echolib.New()

		middleware := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("X-Custom", "test-value")
				next.ServeHTTP(w, req)
			})
		}

		e.Use(echogangway.WrapMiddleware(middleware))
		e.GET("/test", func(c echolib.Context) error {
			return c.String(http.StatusOK, "hello")
		})

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "test-value", rec.Header().Get("X-Custom"))
		assert.Equal(t, "hello", rec.Body.String())
	})
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("given existing request ID, when RequestID middleware applied, then forwards ID", func(t *testing.T) {
		e := echolib.New()
		e.Use(echogangway.RequestID())
		e.GET("/test", func(c echolib.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Request-ID", "existing-id-123")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "existing-id-123", rec.Header().Get("X-Request-ID"))
	})
}

func TestQoS(t *testing.T) {
	t.Parallel()

	t.Run("given rate limit exceeded, when applied, then returns 429", func(t *testing.T) {
		e := echolib.New()
		e.Use(echogangway.QoS(webserver.QoSConfig{Limit: 1, Burst: 1}))
		e.GET("/test", func(c echolib.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		rec1 := httptest.NewRecorder()
		e.ServeHTTP(rec1, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, rec1.Code)

		rec2 := httptest.NewRecorder()
		e.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusTooManyRequests, rec2.Code)
	})
}

func TestRegisterMetrics(t *testing.T) {
	t.Parallel()

	t.Run("given stats registered, then metrics endpoint works", func(t *testing.T) {
		stats, err := webserver.NewStats(webserver.StatsConfig{})
		require.NoError(t, err)

		e := echolib.New()
		echogangway.RegisterMetrics(e, stats, "/metrics")

		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
