package webserver

import (
	"bufio"
	"net"
	"net/http"

	"github.com/rs/zerolog"
)

// errorPageHandler wraps the servlet dispatch with not-found interception.
// When a static files policy is configured and a dispatch ends in 404, the
// default error page is suppressed and the framework's ResponseHandler is
// invoked with an empty route, body, and error, so 404s are representable
// as ordinary framework responses. Any other status, and every status when
// no static files are configured, falls through unchanged.
//
// The ResponseHandler is resolved per interception, mirroring the original
// per-error lookup; a resolution failure falls back to the default page.
type errorPageHandler struct {
	next         http.Handler
	provider     InstanceProvider
	errorFilters []Middleware
	logger       zerolog.Logger
}

func (h *errorPageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	iw := &interceptWriter{ResponseWriter: w}
	h.next.ServeHTTP(iw, r)

	if !iw.intercepted {
		return
	}

	instance, err := h.provider.Provide(TypeResponseHandler)
	if err != nil {
		h.logger.Error().Err(err).Msg("no response handler for intercepted 404")
		http.NotFound(w, r)
		return
	}
	responseHandler, ok := instance.(ResponseHandler)
	if !ok {
		h.logger.Error().
			Str("type", string(TypeResponseHandler)).
			Msg("provided instance does not implement ResponseHandler")
		http.NotFound(w, r)
		return
	}

	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responseHandler.HandleResponse(w, r, nil, nil, nil)
	})
	Chain(h.errorFilters...)(notFound).ServeHTTP(w, r)
}

// interceptWriter suppresses a 404 response entirely - header and body -
// so the interception dispatch can write a fresh one. Non-404 statuses
// pass through untouched.
type interceptWriter struct {
	http.ResponseWriter
	intercepted bool
	wroteHeader bool
}

func (w *interceptWriter) WriteHeader(code int) {
	if w.wroteHeader || w.intercepted {
		return
	}
	if code == http.StatusNotFound {
		w.intercepted = true
		return
	}
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(code)
}

func (w *interceptWriter) Write(b []byte) (int, error) {
	if w.intercepted {
		// Swallow the default error page body.
		return len(b), nil
	}
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
		if w.intercepted {
			return len(b), nil
		}
	}
	return w.ResponseWriter.Write(b)
}

func (w *interceptWriter) Flush() {
	if w.intercepted {
		return
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (w *interceptWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := w.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

func (w *interceptWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
