// Package logging builds the logr.Logger used by the controlkit CLI.
//
// Library packages only ever see a logr.Logger; this package decides how it
// is rendered. Request-scoped loggers pick up chi's request id.
package logging

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Setup builds a logger writing to w (stderr when nil).
//
// Level values: "info" (default), "debug", "trace", or a numeric verbosity.
// Format values: "text" (default), "json".
func Setup(level, format string, w io.Writer) logr.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := funcr.Options{
		LogTimestamp:    true,
		TimestampFormat: time.RFC3339,
		Verbosity:       ParseLevel(level),
	}

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return funcr.NewJSON(func(obj string) {
			fmt.Fprintln(w, obj)
		}, opts)
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(w, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(w, args)
	}, opts)
}

// ParseLevel converts a level name into a logr verbosity.
func ParseLevel(level string) int {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "debug":
		return 1
	case "trace":
		return 2
	case "", "info":
		return 0
	}
	if v, err := strconv.Atoi(level); err == nil && v > 0 {
		return v
	}
	return 0
}

// FromContext returns the logger stored in ctx, or fallback, enriched with
// the chi request id when one is present.
func FromContext(ctx context.Context, fallback logr.Logger) logr.Logger {
	logger, err := logr.FromContext(ctx)
	if err != nil {
		logger = fallback
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.WithValues("request_id", reqID)
	}
	return logger
}

// Middleware stores a request-scoped logger in each request context and logs
// the completed request at V(1).
func Middleware(base logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := FromContext(r.Context(), base)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(logr.NewContext(r.Context(), logger)))

			logger.V(1).Info("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).String(),
			)
		})
	}
}
