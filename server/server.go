// Package server exposes the dashboard over HTTP: JSON for options and
// snapshots, PNG/SVG for charts, CSV/XLSX for the event table.
package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/spektr-org/eventboard/dashboard"
	"github.com/spektr-org/eventboard/export"
	chartrender "github.com/spektr-org/eventboard/render"
)

// Server routes HTTP requests to a dashboard.Service.
type Server struct {
	svc    *dashboard.Service
	logger *slog.Logger
	router chi.Router
}

// New builds the router. A nil logger uses slog.Default().
func New(svc *dashboard.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		svc:    svc,
		logger: logger.With(slog.String("component", "server")),
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.fail(w, r, errNotFound)
	})

	r.Get("/healthz", s.handleHealth)
	r.Get("/logo", s.handleLogo)

	r.Route("/api", func(r chi.Router) {
		r.With(render.SetContentType(render.ContentTypeJSON)).Group(func(r chi.Router) {
			r.Get("/options", s.handleOptions)
			r.Get("/dashboard", s.handleDashboard)
		})
		r.Get("/charts/{file}", s.handleChart)
		r.Get("/export.{format}", s.handleExport)
	})
	return r
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.svc.Options(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, opts)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, snap)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	file := chi.URLParam(r, "file")
	ext := path.Ext(file)
	name := strings.TrimSuffix(file, ext)

	format, err := chartrender.ParseFormat(ext)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	snap, err := s.snapshot(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	cfg, ok := snap.Chart(name)
	if !ok {
		s.fail(w, r, errNotFound)
		return
	}

	var buf bytes.Buffer
	if err := chartrender.BarChart(&buf, cfg, format); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	snap, err := s.snapshot(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, snap.Table, format); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="events.`+string(format)+`"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	logo, err := s.svc.Logo()
	if err != nil {
		s.fail(w, r, errNoLogo)
		return
	}
	w.Header().Set("Content-Type", logo.ContentType)
	_, _ = w.Write(logo.Data)
}

// ============================================================================
// HELPERS
// ============================================================================

func (s *Server) snapshot(r *http.Request) (*dashboard.Snapshot, error) {
	opts, err := s.svc.Options(r.Context())
	if err != nil {
		return nil, err
	}
	c, err := ParseCriteria(r.URL.Query(), opts)
	if err != nil {
		return nil, err
	}
	return s.svc.Build(r.Context(), c)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := fromError(err)
	if apiErr.StatusCode >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			slog.String("path", r.URL.Path),
			slog.String("error_code", apiErr.ErrorCode),
			slog.Any("error", err))
	}
	_ = render.Render(w, r, apiErr)
}
