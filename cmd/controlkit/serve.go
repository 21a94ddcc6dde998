package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-controlkit/components/enumoptions"
	"github.com/goliatone/go-controlkit/internal/logging"
	"github.com/goliatone/go-controlkit/pkg/manifest"
	"github.com/goliatone/go-controlkit/pkg/report"
)

func (a *app) serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	host := fs.String("host", a.cfg.Server.Host, "interface to bind")
	port := fs.Int("port", a.cfg.Server.Port, "port to listen on")
	base := fs.String("base", a.cfg.Server.BasePath, "path prefix for every route")
	if err := fs.Parse(args); err != nil {
		return usageError("serve [flags] <manifest>")
	}
	if fs.NArg() != 1 {
		return usageError("serve [flags] <manifest>")
	}

	a.cfg.Server.Host = *host
	a.cfg.Server.Port = *port
	a.cfg.Server.BasePath = *base
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	control, err := a.loadManifest(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	router, routes, err := newRouter(control, a.cfg.Server.BasePath, a.logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         a.cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", "addr", srv.Addr, "control", control.Key(), "routes", routes)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	a.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// newRouter mounts the enum option routes plus a text description and the
// parameter schema of control.
func newRouter(control *manifest.Control, basePath string, logger logr.Logger) (http.Handler, []string, error) {
	engine, err := report.New()
	if err != nil {
		return nil, nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logging.Middleware(logger))

	routes, err := enumoptions.New(control).RegisterRoutes(r, basePath)
	if err != nil {
		return nil, nil, err
	}

	prefix := strings.TrimRight(basePath, "/")
	r.Get(prefix+"/control", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := engine.Render(w, control); err != nil {
			logging.FromContext(req.Context(), logger).Error(err, "render control description")
		}
	})
	r.Get(prefix+"/control/schema", func(w http.ResponseWriter, req *http.Request) {
		payload, err := json.Marshal(control.ParametersSchema())
		if err != nil {
			logging.FromContext(req.Context(), logger).Error(err, "encode parameter schema")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write(payload)
	})
	return r, append(routes, prefix+"/control", prefix+"/control/schema"), nil
}
