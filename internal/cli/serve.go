package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/loopchart/internal/config"
	"github.com/matzehuels/loopchart/pkg/buildinfo"
	"github.com/matzehuels/loopchart/pkg/diagram"
	"github.com/matzehuels/loopchart/pkg/errors"
	"github.com/matzehuels/loopchart/pkg/pipeline"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// serveCommand creates the serve command that renders diagrams on request.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered diagrams over HTTP",
		Long: `Start an HTTP server that renders diagrams on request.

Endpoints:
  GET /healthz                  liveness and version
  GET /diagrams                 list diagrams and their artifact URLs
  GET /diagrams/{name}.{format} render one artifact

The backend, width, height and samples query parameters override the
configured defaults, e.g. /diagrams/loop.svg?backend=graphviz&samples=16.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.config().Server.Addr
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			srv := newServer(runner, c.config(), c.Logger)
			out := cmd.OutOrStdout()
			printInfo(out, "Serving on %s", StyleNumber.Render("http://"+displayAddr(addr)))
			printKeyValue(out, "backend", c.config().Backend)
			printKeyValue(out, "samples", strconv.Itoa(c.config().Samples))
			return srv.listenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// =============================================================================
// Server
// =============================================================================

// server renders diagrams through a shared pipeline runner.
type server struct {
	runner *pipeline.Runner
	cfg    *config.Config
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, cfg *config.Config, logger *log.Logger) *server {
	return &server{runner: runner, cfg: cfg, logger: logger}
}

// routes builds the HTTP handler.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/diagrams", s.handleList)
	r.Get("/diagrams/{file}", s.handleDiagram)
	return r
}

// listenAndServe blocks until ctx is cancelled, then shuts down gracefully.
func (s *server) listenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// requestID tags each request with the caller's X-Request-Id or a fresh UUID
// and echoes it in the response.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger attaches a request-scoped logger to the context and logs each
// response.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		l := s.logger.With("req", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), l)))

		l.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond))
	})
}

// =============================================================================
// Handlers
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type diagramInfo struct {
	Name      string            `json:"name"`
	Title     string            `json:"title"`
	Artifacts map[string]string `json:"artifacts"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	out := make([]diagramInfo, 0, len(diagram.Kinds()))
	for _, k := range diagram.Kinds() {
		info := diagramInfo{
			Name:      string(k),
			Title:     k.Title(),
			Artifacts: make(map[string]string),
		}
		for _, f := range []string{pipeline.FormatPNG, pipeline.FormatSVG, pipeline.FormatPDF, pipeline.FormatJSON} {
			info.Artifacts[f] = "/diagrams/" + string(k) + "." + f
		}
		out = append(out, info)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(chi.URLParam(r, "file"), r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = ctxLogger(r.Context(), s.logger)

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	if result.AllCached() {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// requestOptions maps "<name>.<format>" and the query string to pipeline
// options. name is a diagram kind or its configured basename.
func (s *server) requestOptions(file string, r *http.Request) (pipeline.Options, error) {
	ext := path.Ext(file)
	if ext == "" {
		return pipeline.Options{}, errors.New(errors.ErrCodeInvalidFormat, "missing format extension in %q", file)
	}
	format := strings.ToLower(ext[1:])
	if err := pipeline.ValidateFormat(format); err != nil {
		return pipeline.Options{}, err
	}
	k, err := s.resolveKind(strings.TrimSuffix(file, ext))
	if err != nil {
		return pipeline.Options{}, err
	}

	dc := s.cfg.Diagram(k)
	opts := pipeline.Options{
		Diagram: k,
		Formats: []string{format},
		Backend: s.cfg.Backend,
		Width:   dc.Width,
		Height:  dc.Height,
		Samples: s.cfg.Samples,
	}

	q := r.URL.Query()
	if v := q.Get("backend"); v != "" {
		opts.Backend = strings.ToLower(v)
	}
	if opts.Width, err = queryFloat(q.Get("width"), opts.Width, "width"); err != nil {
		return pipeline.Options{}, err
	}
	if opts.Height, err = queryFloat(q.Get("height"), opts.Height, "height"); err != nil {
		return pipeline.Options{}, err
	}
	if v := q.Get("samples"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "invalid samples: %q", v)
		}
		opts.Samples = n
	}
	return opts, nil
}

func (s *server) resolveKind(name string) (diagram.Kind, error) {
	for _, k := range diagram.Kinds() {
		if name == s.cfg.Diagram(k).Basename {
			return k, nil
		}
	}
	k, err := diagram.ParseKind(name)
	if err != nil {
		return "", errors.New(errors.ErrCodeNotFound, "unknown diagram: %q", name)
	}
	return k, nil
}

func queryFloat(v string, def float64, name string) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 || f > pipeline.MaxSize {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, v)
	}
	return f, nil
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		ctxLogger(r.Context(), s.logger).Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))})
}

// httpStatus maps error codes to HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
