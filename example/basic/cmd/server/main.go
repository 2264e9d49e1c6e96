package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/gangwaylabs/gangway-go/example/basic/internal/config"
	"github.com/gangwaylabs/gangway-go/example/basic/internal/handlers"
	"github.com/gangwaylabs/gangway-go/webserver"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	registry := webserver.NewRegistry()
	registry.RegisterInstance(webserver.TypeDispatchFilter, handlers.NewDispatchFilter(logger))
	registry.RegisterInstance(webserver.TypeContextSyncFilter, handlers.NewContextSyncFilter(logger))
	registry.RegisterInstance(webserver.TypeRoutingServlet, handlers.NewRouter())
	registry.RegisterInstance(webserver.TypeResponseHandler, handlers.NotFoundHandler{})
	registry.Register("example.echo", func() any { return handlers.NewEchoEndpoint(logger) })

	server, err := webserver.New(
		webserver.WithProvider(registry),
		webserver.WithHost(cfg.Host),
		webserver.WithPort(cfg.Port),
		webserver.WithName("gangway-example"),
		webserver.WithLogger(logger),
		webserver.WithStaticFiles(webserver.StaticFilesConfig{
			URLPattern:    cfg.StaticURLPrefix,
			RootDir:       cfg.StaticDir,
			CacheStrategy: webserver.CacheNever,
		}),
		webserver.WithWebSockets(webserver.WebSocketConfig{Type: "example.echo"}),
		webserver.WithRequestID(),
		webserver.WithRequestLog(webserver.RequestLogConfig{Logger: logger}),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("server assembly failed")
	}

	ctx := context.Background()
	if err := server.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server start failed")
	}
	logger.Info().Stringer("addr", server.Addr()).Msg("serving")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
	}
}
