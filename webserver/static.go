package webserver

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Init-parameter keys the assembled static servlet is configured with.
const (
	// ResourceBaseParam carries the resolved absolute root directory.
	ResourceBaseParam = "resourceBase"

	// CacheStrategyParam carries the cache strategy name.
	CacheStrategyParam = "cacheStrategy"
)

// typeStaticFiles is the internal handler type the static servlet is
// registered under in the assembled chain.
const typeStaticFiles HandlerType = "gangway.staticFiles"

// staticFileServlet serves files from a root directory. Cache headers are
// decided per the configured strategy before byte serving is delegated to
// net/http. Directory listings are disabled: a directory request serves
// its index.html or answers 403.
type staticFileServlet struct {
	root     string
	prefix   string
	strategy CacheStrategy
}

func (s *staticFileServlet) Init(params map[string]string) error {
	s.root = params[ResourceBaseParam]
	if s.root == "" {
		return fmt.Errorf("static files: %s init parameter is required", ResourceBaseParam)
	}
	s.strategy = CacheStrategy(params[CacheStrategyParam])
	if s.strategy == "" {
		s.strategy = CacheDefault
	}
	switch s.strategy {
	case CacheDefault, CacheForever, CacheNever:
	default:
		return fmt.Errorf("static files: unknown cache strategy %q", s.strategy)
	}
	return nil
}

func (s *staticFileServlet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	rel := strings.TrimPrefix(r.URL.Path, s.prefix)
	// Clean under a rooted path so ".." cannot escape the resource base.
	name := filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+rel)))

	info, err := os.Stat(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if info.IsDir() {
		index := filepath.Join(name, "index.html")
		indexInfo, err := os.Stat(index)
		if err != nil || indexInfo.IsDir() {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		name = index
	}

	s.applyCacheHeaders(w)
	http.ServeFile(w, r, name)
}

func (s *staticFileServlet) applyCacheHeaders(w http.ResponseWriter) {
	switch s.strategy {
	case CacheForever:
		w.Header().Set("Cache-Control", "max-age=31536000")
	case CacheNever:
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Expires", "0")
		w.Header().Set("Pragma", "no-cache")
	}
}
