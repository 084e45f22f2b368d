// Package server serves the chart and its country selector over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/ukaji3/polioviz-go/pkg/polioviz"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/countries"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/export"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/output"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/render"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/selection"
)

// Server holds a single chart shared by every client. A selection made by
// one request is what the next request sees.
type Server struct {
	registry   *countries.Registry
	controller *selection.Controller
	dims       render.Dimensions
	logger     *log.Logger

	mu    sync.RWMutex
	frame models.Frame
	plot  render.Plot
}

// New builds a server over the datasets and draws the initial empty chart.
// A nil logger uses the standard logger.
func New(d *polioviz.Datasets, dims render.Dimensions, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		registry: d.Registry,
		dims:     dims,
		logger:   logger,
	}
	s.controller = d.Controller(s.draw, selection.WithLogger(logger))
	s.controller.Start()
	return s
}

// draw is the controller's render callback.
func (s *Server) draw(f models.Frame) {
	plot := render.Layout(f, s.dims)
	s.mu.Lock()
	s.frame = f
	s.plot = plot
	s.mu.Unlock()
}

func (s *Server) current() (models.Frame, render.Plot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame, s.plot
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

// RegisterRoutes registers the chart endpoints on mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/chart.svg", s.handleChart(render.FormatSVG))
	mux.HandleFunc("/chart.png", s.handleChart(render.FormatPNG))
	mux.HandleFunc("/series.json", s.handleSeries)
	mux.HandleFunc("/series.xlsx", s.handleWorkbook)
	mux.HandleFunc("/readout.json", s.handleReadout)
	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	s.logger.Printf("listening on %s", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-serveErr
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := http.StatusOK
	var message string
	if code := r.URL.Query().Get("country"); code != "" {
		err := s.controller.Select(r.Context(), code)
		switch {
		case err == nil, errors.Is(err, selection.ErrSuperseded):
		case errors.Is(err, countries.ErrUnknownCountry):
			status = http.StatusNotFound
			message = fmt.Sprintf("Unknown country %q.", code)
		default:
			s.logger.Printf("select %s: %v", code, err)
			message = "Some data could not be loaded for this country."
		}
	}

	frame, _ := s.current()
	view := indexView{
		Title:       frame.Title,
		Placeholder: selection.DefaultTitle,
		Message:     message,
		Version:     frame.Version,
		Width:       s.dims.Width,
		Height:      s.dims.Height,
		Selected:    frame.Country.Code != "",
	}
	for _, c := range s.registry.Countries() {
		view.Countries = append(view.Countries, option{
			Code:     c.Code,
			Name:     c.Name,
			Selected: c.Code == frame.Country.Code,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, "index.html", view); err != nil {
		s.logger.Printf("render index: %v", err)
	}
}

func (s *Server) handleChart(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, plot := s.current()
		w.Header().Set("Content-Type", format.ContentType())
		w.Header().Set("Cache-Control", "no-store")
		if err := render.Render(w, plot, format); err != nil {
			s.logger.Printf("render chart: %v", err)
			http.Error(w, "failed to render chart", http.StatusInternalServerError)
		}
	}
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	frame, _ := s.current()
	pretty := r.URL.Query().Get("pretty") != ""
	w.Header().Set("Content-Type", "application/json")
	if err := output.WriteJSON(w, frame, pretty); err != nil {
		s.logger.Printf("write series: %v", err)
	}
}

func (s *Server) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	frame, _ := s.current()
	if frame.Country.Code == "" {
		http.Error(w, "no country selected", http.StatusConflict)
		return
	}
	wb, err := export.Workbook(frame)
	if err != nil {
		s.logger.Printf("build workbook: %v", err)
		http.Error(w, "failed to build workbook", http.StatusInternalServerError)
		return
	}
	defer wb.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", frame.Country.Code+".xlsx"))
	if err := wb.Write(w); err != nil {
		s.logger.Printf("write workbook: %v", err)
	}
}

type readoutView struct {
	Year      int      `json:"year"`
	X         float64  `json:"x"`
	Incidence *float64 `json:"incidence"`
	Coverage  *float64 `json:"coverage"`
}

// handleReadout reports the values for the year nearest to the plot-area
// pixel ?x=.
func (s *Server) handleReadout(w http.ResponseWriter, r *http.Request) {
	px, err := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	if err != nil {
		http.Error(w, "x must be a number", http.StatusBadRequest)
		return
	}
	_, plot := s.current()
	rd, ok := plot.Nearest(px)
	if !ok {
		http.Error(w, "no data", http.StatusNotFound)
		return
	}
	view := readoutView{Year: rd.Year, X: rd.X, Incidence: optional(rd.Incidence), Coverage: optional(rd.Coverage)}
	w.Header().Set("Content-Type", "application/json")
	if err := output.WriteJSON(w, view, false); err != nil {
		s.logger.Printf("write readout: %v", err)
	}
}

func optional(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
