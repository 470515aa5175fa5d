package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ecsdump/pkg/cache"
	"github.com/matzehuels/ecsdump/pkg/ecs/memory"
	"github.com/matzehuels/ecsdump/pkg/errors"
	"github.com/matzehuels/ecsdump/pkg/export"
	"github.com/matzehuels/ecsdump/pkg/observability"
	"github.com/matzehuels/ecsdump/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command, an HTTP endpoint that renders the
// graphs of one manifest on request. The manifest is reloaded when it
// changes on disk.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <manifest>",
		Short: "Serve the graphs of a manifest over HTTP",
		Long: `Serve the graphs of a manifest over HTTP.

Routes:
  GET /healthz
  GET /schedules
  GET /graphs/schedule/{label}
  GET /graphs/{data|events|render}

Graph routes accept the query parameters format, theme, scale, raw_names,
system_prefix, system_match, schedules, collapse_single_sets,
hide_ambiguities, keep_transitive, show_conditions, include_empty_sets,
include_events, hide_single_edge and type_names.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path, addr string) error {
	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, c.Logger)
	defer runner.Close()

	src := &appSource{path: path, runner: runner}
	if _, err := src.get(); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(src, runner, c.Logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()
	printSuccess("Serving %s on %s", path, StyleLink.Render("http://"+addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	c.Logger.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return ctx.Err()
}

// =============================================================================
// App Source
// =============================================================================

// appSource loads the manifest lazily and reloads it when its modification
// time changes.
type appSource struct {
	path   string
	runner *pipeline.Runner

	mu      sync.Mutex
	app     *memory.App
	modTime time.Time
}

func (s *appSource) get() (*memory.App, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "stat %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.app != nil && info.ModTime().Equal(s.modTime) {
		return s.app, nil
	}
	app, err := s.runner.Load(s.path)
	if err != nil {
		return nil, err
	}
	s.app, s.modTime = app, info.ModTime()
	return app, nil
}

// =============================================================================
// Handlers
// =============================================================================

type server struct {
	src    *appSource
	runner *pipeline.Runner
	logger *log.Logger
}

func newServer(src *appSource, runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{src: src, runner: runner, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "ok")
	})
	r.Get("/schedules", s.handleSchedules)
	r.Get("/graphs/schedule/{label}", s.handleSchedule)
	r.Get("/graphs/{kind}", s.handleGraph)
	return r
}

// observe reports every request to the HTTP hooks and attaches the logger to
// the request context.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := withLogger(r.Context(), s.logger)
		hooks := observability.HTTP()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		elapsed := time.Since(start)
		hooks.OnResponse(ctx, r.Method, r.URL.Path, ww.Status(), elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", elapsed)
	})
}

func (s *server) handleSchedules(w http.ResponseWriter, r *http.Request) {
	app, err := s.src.get()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	labels, err := scheduleLabels(app)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = string(l)
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedules": names})
}

func (s *server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	opts, err := optionsFromQuery(pipeline.KindSchedule, r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Schedule = chi.URLParam(r, "label")
	s.render(w, r, opts)
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if kind == pipeline.KindSchedule {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "schedule graphs are served at /graphs/schedule/{label}"))
		return
	}
	opts, err := optionsFromQuery(kind, r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, opts)
}

func (s *server) render(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	app, err := s.src.get()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), app, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := export.Format(opts.Formats[0])
	w.Header().Set("Content-Type", format.ContentType())
	if result.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[string(format)])
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		loggerFromContext(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, map[string]string{
		"error":   string(code),
		"message": errors.UserMessage(err),
	})
}

// httpStatus maps error codes to HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeScheduleNotFound), errors.Is(err, errors.ErrCodeRenderAppMissing):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidInput),
		errors.Is(err, errors.ErrCodeInvalidFormat),
		errors.Is(err, errors.ErrCodeInvalidTheme):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeBuildFailed), errors.Is(err, errors.ErrCodeInvalidManifest):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// Query Parsing
// =============================================================================

// optionsFromQuery maps query parameters onto pipeline options. Unknown
// parameters are ignored.
func optionsFromQuery(kind string, q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{
		Kind:           kind,
		Theme:          q.Get("theme"),
		SystemPrefixes: splitList(q.Get("system_prefix")),
		SystemPattern:  q.Get("system_match"),
		Schedules:      splitList(q.Get("schedules")),
	}
	if err := pipeline.ValidateKind(kind); err != nil {
		return opts, err
	}

	format := export.FormatDOT
	if v := q.Get("format"); v != "" {
		f, err := export.ParseFormat(v)
		if err != nil {
			return opts, err
		}
		format = f
	}
	opts.Formats = []string{string(format)}

	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid scale %q", v)
		}
		opts.Scale = scale
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{"raw_names", &opts.RawNames},
		{"collapse_single_sets", &opts.CollapseSingleSets},
		{"hide_ambiguities", &opts.HideAmbiguities},
		{"keep_transitive", &opts.KeepTransitive},
		{"show_conditions", &opts.ShowConditions},
		{"include_empty_sets", &opts.IncludeEmptySets},
		{"include_events", &opts.IncludeEvents},
		{"hide_single_edge", &opts.HideSingleEdge},
		{"type_names", &opts.ShowTypeNames},
		{"refresh", &opts.Refresh},
	}
	for _, f := range flags {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s %q", f.name, v)
		}
		*f.dst = b
	}
	return opts, nil
}
