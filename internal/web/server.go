package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"ActionCountdown/internal/config"
	"ActionCountdown/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

// Options configures the HTTP surface.
type Options struct {
	Site       config.SiteConfig
	Revalidate time.Duration
	Logger     *slog.Logger
}

// Server renders both views under the site base path.
type Server struct {
	pages    *usecase.Pages
	renderer *Renderer
	site     config.SiteConfig
	maxAge   int
	logger   *slog.Logger
	router   *mux.Router
}

// NewServer builds the router.
func NewServer(pages *usecase.Pages, renderer *Renderer, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		pages:    pages,
		renderer: renderer,
		site:     opts.Site,
		maxAge:   int(opts.Revalidate / time.Second),
		logger:   logger,
		router:   mux.NewRouter(),
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr, "base", s.site.BasePath)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh
	return nil
}

func (s *Server) setupRoutes() {
	s.router.Use(securityHeaders, s.logRequests)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	base := s.site.BasePath
	if base != "" {
		if s.site.RedirectRoot {
			s.router.Handle("/", http.RedirectHandler(base, http.StatusFound)).Methods(http.MethodGet)
		}
		s.router.Handle(base, s.cached(s.handleMasonry)).Methods(http.MethodGet)
	}

	site := s.router.PathPrefix(base + "/").Subrouter()
	site.Use(s.cacheControl)

	site.HandleFunc("/", s.handleMasonry).Methods(http.MethodGet)
	site.HandleFunc("/carousel", s.handleCarousel).Methods(http.MethodGet)
	site.HandleFunc("/carousel/", s.handleCarousel).Methods(http.MethodGet)
	site.HandleFunc("/items.json", s.handleItems).Methods(http.MethodGet)
	site.HandleFunc("/static/app.css", s.handleCSS).Methods(http.MethodGet)
	site.PathPrefix("/static/").Handler(
		http.StripPrefix(base+"/static/", http.FileServer(http.FS(Static()))),
	).Methods(http.MethodGet)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleMasonry(w http.ResponseWriter, r *http.Request) {
	page := s.pages.Masonry(r.Context(), parseDates(r.URL.Query().Get("open")))
	s.writeHTML(w, func(buf io.Writer) error {
		return s.renderer.Masonry(buf, page)
	})
}

func (s *Server) handleCarousel(w http.ResponseWriter, r *http.Request) {
	focus, err := strconv.Atoi(r.URL.Query().Get("focus"))
	page := s.pages.Carousel(r.Context(), focus, err == nil)
	s.writeHTML(w, func(buf io.Writer) error {
		return s.renderer.Carousel(buf, page)
	})
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.pages.Items(r.Context())); err != nil {
		s.logger.Error("encode items", "error", err)
	}
}

func (s *Server) handleCSS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Write(s.renderer.CSS())
}

func (s *Server) writeHTML(w http.ResponseWriter, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// parseDates reads a comma-separated list of item dates, skipping junk.
func parseDates(raw string) []int {
	var dates []int
	for _, part := range strings.Split(raw, ",") {
		date, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	return dates
}
