package webserver

import "errors"

// The package reports every failure through a small, stable taxonomy.
// Underlying causes are attached with %w and reachable via errors.Unwrap;
// callers match the kind with errors.Is.
var (
	// ErrInvalidConfig reports a configuration rejected at construction
	// time, before any server object exists (nil provider, port out of
	// range, unusable static files configuration).
	ErrInvalidConfig = errors.New("webserver: invalid configuration")

	// ErrAssembly reports a registration failure while building the
	// handler graph (provider could not supply an instance, an instance
	// has the wrong shape, a WebSocket endpoint has no path, an Init
	// call failed). Assembly is never partially committed.
	ErrAssembly = errors.New("webserver: assembly failed")

	// ErrAlreadyRunning is returned by Start when the server is running.
	ErrAlreadyRunning = errors.New("webserver: server is already running")

	// ErrAlreadyStopped is returned by Stop when the server is stopped.
	ErrAlreadyStopped = errors.New("webserver: server is already stopped")

	// ErrStart wraps an underlying bind or startup failure. The server
	// remains stopped.
	ErrStart = errors.New("webserver: unable to start server")

	// ErrStop wraps an underlying shutdown failure. The server is
	// considered stopped regardless.
	ErrStop = errors.New("webserver: error while stopping server")
)
