package webserver

import (
	"fmt"
	"net/http"
	"path/filepath"
)

// filterRegistration is one installed filter: the resolved instance plus
// the matching rules it was registered with.
type filterRegistration struct {
	typ      HandlerType
	pattern  string
	instance Filter
	phases   []DispatchType
}

func (f *filterRegistration) dispatchesTo(phase DispatchType) bool {
	if len(f.phases) == 0 {
		return phase == DispatchRequest
	}
	for _, p := range f.phases {
		if p == phase {
			return true
		}
	}
	return false
}

// servletRegistration is one installed servlet.
type servletRegistration struct {
	typ      HandlerType
	pattern  string
	instance http.Handler
}

// servletDispatcher selects the first servlet in chain order whose
// pattern matches the request path. The routing servlet at /* is always
// last, so dispatch cannot fall through in an assembled server.
type servletDispatcher struct {
	servlets []servletRegistration
}

func (d *servletDispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	for i := range d.servlets {
		if matchPattern(d.servlets[i].pattern, r.URL.Path) {
			d.servlets[i].instance.ServeHTTP(w, r)
			return
		}
	}
	http.NotFound(w, r)
}

// assemble translates the configuration into the handler graph, exactly
// once, at construction time. No network I/O happens here; binding is
// deferred to Start.
func (s *Server) assemble() error {
	filters, err := s.buildFilterChain()
	if err != nil {
		return err
	}
	servlets, err := s.buildServletChain()
	if err != nil {
		return err
	}

	var handler http.Handler = &servletDispatcher{servlets: servlets}

	if s.cfg.StaticFiles != nil {
		handler = &errorPageHandler{
			next:         handler,
			provider:     s.cfg.Provider,
			errorFilters: filterMiddlewares(filters, DispatchError),
			logger:       s.logger,
		}
	}

	handler = Chain(filterMiddlewares(filters, DispatchRequest)...)(handler)

	services, err := s.buildServices()
	if err != nil {
		return err
	}
	handler = Chain(services...)(handler)

	s.filterChain = filters
	s.servletChain = servlets
	s.handler = handler
	return nil
}

// buildFilterChain computes the final filter order: the framework
// dispatch filter first, the caller's filters strictly between in
// supplied order, the context sync filter last.
func (s *Server) buildFilterChain() ([]filterRegistration, error) {
	staticPattern := ""
	if s.cfg.StaticFiles != nil {
		staticPattern = s.cfg.StaticFiles.URLPattern
	}

	configs := make([]FilterConfig, 0, len(s.cfg.Filters)+2)
	configs = append(configs, FilterConfig{
		Type:       TypeDispatchFilter,
		URLPattern: "/*",
		InitParams: map[string]string{StaticFilesURLPatternParam: staticPattern},
	})
	configs = append(configs, s.cfg.Filters...)
	configs = append(configs, FilterConfig{
		Type:       TypeContextSyncFilter,
		URLPattern: "/*",
	})

	filters := make([]filterRegistration, 0, len(configs))
	for _, cfg := range configs {
		instance, err := s.cfg.Provider.Provide(cfg.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: provide filter %q: %w", ErrAssembly, cfg.Type, err)
		}
		filter, ok := instance.(Filter)
		if !ok {
			return nil, fmt.Errorf("%w: instance for %q does not implement Filter", ErrAssembly, cfg.Type)
		}
		if err := initialize(filter, cfg.InitParams); err != nil {
			return nil, fmt.Errorf("%w: init filter %q: %w", ErrAssembly, cfg.Type, err)
		}
		filters = append(filters, filterRegistration{
			typ:      cfg.Type,
			pattern:  cfg.URLPattern,
			instance: filter,
			phases:   cfg.Dispatches,
		})
	}
	return filters, nil
}

// buildServletChain computes the final servlet order: the static servlet
// (when configured) first, the caller's servlets in supplied order, then
// WebSocket endpoints, then the routing servlet at /*.
func (s *Server) buildServletChain() ([]servletRegistration, error) {
	var servlets []servletRegistration

	if sf := s.cfg.StaticFiles; sf != nil {
		static, err := s.buildStaticServlet(sf)
		if err != nil {
			return nil, err
		}
		servlets = append(servlets, *static)
	}

	for _, cfg := range s.cfg.Servlets {
		instance, err := s.cfg.Provider.Provide(cfg.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: provide servlet %q: %w", ErrAssembly, cfg.Type, err)
		}
		servlet, ok := instance.(http.Handler)
		if !ok {
			return nil, fmt.Errorf("%w: instance for %q does not implement http.Handler", ErrAssembly, cfg.Type)
		}
		if err := initialize(servlet, cfg.InitParams); err != nil {
			return nil, fmt.Errorf("%w: init servlet %q: %w", ErrAssembly, cfg.Type, err)
		}
		servlets = append(servlets, servletRegistration{
			typ:      cfg.Type,
			pattern:  cfg.URLPattern,
			instance: servlet,
		})
	}

	wsServlets, err := s.buildWebSocketServlets()
	if err != nil {
		return nil, err
	}
	servlets = append(servlets, wsServlets...)

	instance, err := s.cfg.Provider.Provide(TypeRoutingServlet)
	if err != nil {
		return nil, fmt.Errorf("%w: provide routing servlet: %w", ErrAssembly, err)
	}
	routing, ok := instance.(http.Handler)
	if !ok {
		return nil, fmt.Errorf("%w: routing servlet does not implement http.Handler", ErrAssembly)
	}
	servlets = append(servlets, servletRegistration{
		typ:      TypeRoutingServlet,
		pattern:  "/*",
		instance: routing,
	})

	return servlets, nil
}

func (s *Server) buildStaticServlet(sf *StaticFilesConfig) (*servletRegistration, error) {
	if sf.URLPattern == "" {
		return nil, fmt.Errorf("%w: static files URL pattern is required", ErrInvalidConfig)
	}
	if sf.RootDir == "" {
		return nil, fmt.Errorf("%w: static files root directory is required", ErrInvalidConfig)
	}
	root, err := filepath.Abs(sf.RootDir)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve static files root: %w", ErrInvalidConfig, err)
	}

	strategy := sf.CacheStrategy
	if strategy == "" {
		strategy = CacheDefault
	}

	static := &staticFileServlet{prefix: patternPrefix(sf.URLPattern)}
	params := map[string]string{
		ResourceBaseParam:  root,
		CacheStrategyParam: string(strategy),
	}
	if err := static.Init(params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &servletRegistration{
		typ:      typeStaticFiles,
		pattern:  sf.URLPattern,
		instance: static,
	}, nil
}

// buildWebSocketServlets resolves each endpoint's path (explicit, else
// the instance's EndpointPath) and installs an upgrading servlet per
// endpoint. Any failure aborts assembly; there is no partial install.
func (s *Server) buildWebSocketServlets() ([]servletRegistration, error) {
	servlets := make([]servletRegistration, 0, len(s.cfg.WebSockets))
	for _, cfg := range s.cfg.WebSockets {
		instance, err := s.cfg.Provider.Provide(cfg.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: provide websocket endpoint %q: %w", ErrAssembly, cfg.Type, err)
		}
		endpoint, ok := instance.(WebSocketEndpoint)
		if !ok {
			return nil, fmt.Errorf("%w: instance for %q does not implement WebSocketEndpoint", ErrAssembly, cfg.Type)
		}

		path := cfg.Path
		if path == "" {
			pathed, ok := endpoint.(PathedEndpoint)
			if !ok {
				return nil, fmt.Errorf("%w: websocket endpoint %q has no configured path and does not implement PathedEndpoint", ErrAssembly, cfg.Type)
			}
			path = pathed.EndpointPath()
		}
		if path == "" {
			return nil, fmt.Errorf("%w: websocket endpoint %q resolved to an empty path", ErrAssembly, cfg.Type)
		}

		servlets = append(servlets, servletRegistration{
			typ:      cfg.Type,
			pattern:  path,
			instance: newWebSocketServlet(s.cfg.Provider, cfg, s.logger),
		})
	}
	return servlets, nil
}

// buildServices composes the container services around the assembled
// chain. Services never reorder filter or servlet registrations.
func (s *Server) buildServices() ([]Middleware, error) {
	var services []Middleware

	if s.cfg.RequestID {
		services = append(services, RequestID())
	}
	if s.cfg.Tracing != nil {
		cfg := *s.cfg.Tracing
		cfg.serverName = s.cfg.Name
		services = append(services, Tracing(cfg))
	}
	if s.cfg.Stats != nil {
		cfg := *s.cfg.Stats
		stats, err := NewStats(cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: stats: %w", ErrAssembly, err)
		}
		s.stats = stats
		services = append(services, stats.Middleware())
	}
	if s.cfg.RequestLog != nil {
		cfg := *s.cfg.RequestLog
		cfg.serverName = s.cfg.Name
		services = append(services, RequestLog(cfg))
	}
	if s.cfg.QoS != nil {
		services = append(services, QoS(*s.cfg.QoS))
	}

	return services, nil
}

// filterMiddlewares lowers the filter chain onto middleware for one
// dispatch phase. A filter runs only when the phase is declared and the
// pattern matches the request path.
func filterMiddlewares(filters []filterRegistration, phase DispatchType) []Middleware {
	middlewares := make([]Middleware, 0, len(filters))
	for i := range filters {
		reg := filters[i]
		if !reg.dispatchesTo(phase) {
			continue
		}
		middlewares = append(middlewares, func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !matchPattern(reg.pattern, r.URL.Path) {
					next.ServeHTTP(w, r)
					return
				}
				reg.instance.HandleRequest(w, r, next)
			})
		})
	}
	return middlewares
}

func initialize(instance any, params map[string]string) error {
	init, ok := instance.(Initializer)
	if !ok {
		return nil
	}
	if params == nil {
		params = map[string]string{}
	}
	return init.Init(params)
}
