package webserver_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gangwaylabs/gangway-go/webserver"
)

func TestStaticFiles(t *testing.T) {
	t.Parallel()

	newStaticServer := func(t *testing.T, strategy webserver.CacheStrategy) (*webserver.Server, string) {
		t.Helper()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "app.css"), []byte("body{}"), 0o600))

		server, err := webserver.New(
			webserver.WithProvider(newStaticRegistry()),
			webserver.WithStaticFiles(webserver.StaticFilesConfig{
				URLPattern:    "/static/*",
				RootDir:       dir,
				CacheStrategy: strategy,
			}),
		)
		require.NoError(t, err)
		return server, dir
	}

	t.Run("given an existing file, then it is served with a 200", func(t *testing.T) {
		t.Parallel()

		server, _ := newStaticServer(t, webserver.CacheDefault)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "body{}", rec.Body.String())
	})

	t.Run("given the default cache strategy, then no cache headers are set", func(t *testing.T) {
		t.Parallel()

		server, _ := newStaticServer(t, webserver.CacheDefault)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

		assert.Empty(t, rec.Header().Get("Cache-Control"))
		assert.Empty(t, rec.Header().Get("Expires"))
		assert.Empty(t, rec.Header().Get("Pragma"))
	})

	t.Run("given the forever cache strategy, then a one year max-age is set", func(t *testing.T) {
		t.Parallel()

		server, _ := newStaticServer(t, webserver.CacheForever)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

		assert.Equal(t, "max-age=31536000", rec.Header().Get("Cache-Control"))
	})

	t.Run("given the never cache strategy, then caching is fully disabled", func(t *testing.T) {
		t.Parallel()

		server, _ := newStaticServer(t, webserver.CacheNever)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/app.css", nil))

		assert.Equal(t, "no-cache, no-store, must-revalidate", rec.Header().Get("Cache-Control"))
		assert.Equal(t, "0", rec.Header().Get("Expires"))
		assert.Equal(t, "no-cache", rec.Header().Get("Pragma"))
	})

	t.Run("given a directory with an index.html, then the index is served", func(t *testing.T) {
		t.Parallel()

		server, dir := newStaticServer(t, webserver.CacheDefault)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>home</html>"), 0o600))

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "home")
	})

	t.Run("given a directory without an index.html, then listing is refused with a 403", func(t *testing.T) {
		t.Parallel()

		server, dir := newStaticServer(t, webserver.CacheDefault)
		require.NoError(t, os.Mkdir(filepath.Join(dir, "assets"), 0o750))

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/assets/", nil))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("given a path traversal attempt, then it cannot escape the root directory", func(t *testing.T) {
		t.Parallel()

		parent := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("secret"), 0o600))
		dir := filepath.Join(parent, "public")
		require.NoError(t, os.Mkdir(dir, 0o750))

		server, err := webserver.New(
			webserver.WithProvider(newStaticRegistry()),
			webserver.WithStaticFiles(webserver.StaticFilesConfig{
				URLPattern: "/static/*",
				RootDir:    dir,
			}),
		)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/static/foo", nil)
		req.URL.Path = "/static/../secret.txt"

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, req)

		assert.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("given a non-GET method, then a 405 with an Allow header is returned", func(t *testing.T) {
		t.Parallel()

		server, _ := newStaticServer(t, webserver.CacheDefault)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/static/app.css", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
	})
}

func TestNotFoundInterception(t *testing.T) {
	t.Parallel()

	// A registry whose routing servlet answers 404 for every path, so the
	// interception path is exercised end to end.
	newInterceptingRegistry := func() *webserver.Registry {
		registry := webserver.NewRegistry()
		registry.RegisterInstance(webserver.TypeDispatchFilter, passFilter())
		registry.RegisterInstance(webserver.TypeContextSyncFilter, passFilter())
		registry.RegisterInstance(webserver.TypeRoutingServlet, http.NotFoundHandler())
		registry.RegisterInstance(webserver.TypeResponseHandler, responseHandlerFunc(
			func(w http.ResponseWriter, _ *http.Request, _ *webserver.Route, _ any, _ error) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte("custom not found page"))
			},
		))
		return registry
	}

	t.Run("given static files configured, then a 404 is replaced by the response handler's page", func(t *testing.T) {
		t.Parallel()

		server, err := webserver.New(
			webserver.WithProvider(newInterceptingRegistry()),
			webserver.WithStaticFiles(webserver.StaticFilesConfig{
				URLPattern: "/static/*",
				RootDir:    t.TempDir(),
			}),
		)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "custom not found page", rec.Body.String())
	})

	t.Run("given no static files configured, then the default 404 page passes through", func(t *testing.T) {
		t.Parallel()

		registry := newInterceptingRegistry()
		server, err := webserver.New(webserver.WithProvider(registry))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.NotContains(t, rec.Body.String(), "custom not found page")
	})

	t.Run("given a non-404 response, then it is never intercepted", func(t *testing.T) {
		t.Parallel()

		registry := newInterceptingRegistry()
		registry.RegisterInstance(webserver.TypeRoutingServlet, textServlet("routed"))

		dir := t.TempDir()
		server, err := webserver.New(
			webserver.WithProvider(registry),
			webserver.WithStaticFiles(webserver.StaticFilesConfig{
				URLPattern: "/static/*",
				RootDir:    dir,
			}),
		)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "routed", rec.Body.String())
	})

	t.Run("given an error-phase filter, then it wraps the interception dispatch", func(t *testing.T) {
		t.Parallel()

		var order []string

		registry := newInterceptingRegistry()
		registry.RegisterInstance("test.errorDecorator", traceFilter("errorDecorator", &order))

		server, err := webserver.New(
			webserver.WithProvider(registry),
			webserver.WithStaticFiles(webserver.StaticFilesConfig{
				URLPattern: "/static/*",
				RootDir:    t.TempDir(),
			}),
			webserver.WithFilters(webserver.FilterConfig{
				Type:       "test.errorDecorator",
				URLPattern: "/*",
				Dispatches: []webserver.DispatchType{webserver.DispatchError},
			}),
		)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))

		assert.Equal(t, []string{"errorDecorator-before", "errorDecorator-after"}, order)
		assert.Equal(t, "custom not found page", rec.Body.String())
	})

	t.Run("given no response handler registered, then the default 404 page is the fallback", func(t *testing.T) {
		t.Parallel()

		registry := webserver.NewRegistry()
		registry.RegisterInstance(webserver.TypeDispatchFilter, passFilter())
		registry.RegisterInstance(webserver.TypeContextSyncFilter, passFilter())
		registry.RegisterInstance(webserver.TypeRoutingServlet, http.NotFoundHandler())

		server, err := webserver.New(
			webserver.WithProvider(registry),
			webserver.WithStaticFiles(webserver.StaticFilesConfig{
				URLPattern: "/static/*",
				RootDir:    t.TempDir(),
			}),
		)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.css", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
