package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/pagesift"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultAddr is the default bind address for the API server.
const DefaultAddr = ":8080"

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// requestTimeout bounds a single API request. A scrape may spend up to a
// fetch timeout plus a model call, so this sits well above both.
const requestTimeout = 120 * time.Second

// Server serves the scraping JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the bind address. DefaultAddr when empty.
	Addr string

	Scraper  pagesift.ScrapeService
	Exporter pagesift.ExportService
	Logger   *slog.Logger
}

// NewServer creates a Server with routes and middleware registered. The
// Scraper and Exporter fields must be set before serving requests.
func NewServer() *Server {
	s := &Server{
		Addr:   DefaultAddr,
		Logger: slog.Default(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/scrape", s.handleScrape)
		r.Post("/export", s.handleExport)
		r.Get("/download/{filename}", s.handleDownload)
	})

	s.router = r
	s.server = &http.Server{Handler: r}
	return s
}

// ServeHTTP handles an HTTP request. It exists so tests can drive the server
// without binding a port.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open binds the listener and starts serving in the background.
func (s *Server) Open() error {
	addr := s.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server error", "err", err)
		}
	}()

	return nil
}

// URL returns the base URL of the bound listener.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts the server down.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// scrapeResponse is the success envelope of the JSON API.
type scrapeResponse struct {
	Success bool                   `json:"success"`
	Data    *pagesift.ScrapeResult `json:"data"`
	Message string                 `json:"message"`
}

// errorResponse is the failure envelope of the JSON API.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req pagesift.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pagesift.Errorf(pagesift.EINVALID, "invalid request body: %v", err))
		return
	}

	result, err := s.Scraper.Scrape(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, scrapeResponse{
		Success: true,
		Data:    result,
		Message: fmt.Sprintf("Successfully extracted %d item(s)", result.Len()),
	})
}

// exportRequest asks for a scrape result to be written to a download file.
type exportRequest struct {
	Data     *pagesift.ScrapeResult `json:"data"`
	Format   pagesift.ExportFormat  `json:"format"`
	Filename string                 `json:"filename"`
}

type exportResponse struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, pagesift.Errorf(pagesift.EINVALID, "invalid request body: %v", err))
		return
	}
	if req.Format == "" {
		req.Format = pagesift.FormatJSON
	}

	filename, err := s.Exporter.Export(req.Data, req.Format, req.Filename)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{Success: true, Filename: filename})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	f, err := s.Exporter.Open(filename)
	if err != nil {
		writeError(w, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = io.Copy(w, f)
}

// errorStatus maps application error codes onto HTTP status codes. A scrape
// that finds nothing is not a failure of the API call itself, so ENORESULTS
// keeps a 200 status with success set to false.
var errorStatus = map[string]int{
	pagesift.EINVALID:      http.StatusBadRequest,
	pagesift.ENOTFOUND:     http.StatusNotFound,
	pagesift.ENORESULTS:    http.StatusOK,
	pagesift.ETIMEOUT:      http.StatusGatewayTimeout,
	pagesift.EHTTPSTATUS:   http.StatusBadGateway,
	pagesift.EUNREACHABLE:  http.StatusBadGateway,
	pagesift.EREDIRECTS:    http.StatusBadGateway,
	pagesift.EPARSE:        http.StatusBadGateway,
	pagesift.EAISERVICE:    http.StatusBadGateway,
	pagesift.EUNAUTHORIZED: http.StatusBadGateway,
}

func writeError(w http.ResponseWriter, err error) {
	status, ok := errorStatus[pagesift.ErrorCode(err)]
	if !ok {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, errorResponse{Success: false, Error: pagesift.ErrorMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
