// Package api exposes the recorded pedestal analyses over HTTP so the
// results database can be queried without a sqlite client.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cherenkov-data/pedestal.report/internal/db"
	"github.com/cherenkov-data/pedestal.report/internal/httputil"
	"github.com/cherenkov-data/pedestal.report/internal/monitoring"
	"github.com/cherenkov-data/pedestal.report/internal/subrun"
	"github.com/cherenkov-data/pedestal.report/internal/version"
)

const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

type Server struct {
	db *db.DB
}

func NewServer(db *db.DB) *Server {
	return &Server{db: db}
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyses", s.listAnalyses)
	mux.HandleFunc("/api/pedestals", s.listPedestals)
	mux.HandleFunc("/api/version", s.showVersion)
	return mux
}

func (s *Server) listAnalyses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	run, err := strconv.Atoi(r.URL.Query().Get("run"))
	if err != nil {
		httputil.BadRequest(w, "run must be an integer")
		return
	}

	analyses, err := s.db.Analyses(run)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to retrieve analyses: %v", err))
		return
	}
	if len(analyses) == 0 {
		httputil.NotFound(w, fmt.Sprintf("no analyses recorded for run %d", run))
		return
	}
	httputil.WriteJSONOK(w, analyses)
}

func (s *Server) listPedestals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	run, err := strconv.Atoi(q.Get("run"))
	if err != nil {
		httputil.BadRequest(w, "run must be an integer")
		return
	}
	sub, err := strconv.Atoi(q.Get("subrun"))
	if err != nil {
		httputil.BadRequest(w, "subrun must be an integer")
		return
	}

	id := subrun.ID{Run: run, Subrun: sub}
	ids, err := s.db.PedestalIDs(id)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to retrieve pedestal ids: %v", err))
		return
	}
	if len(ids) == 0 {
		httputil.NotFound(w, fmt.Sprintf("no pedestals recorded for %s", id))
		return
	}
	httputil.WriteJSONOK(w, map[string]interface{}{
		"subrun":    id.String(),
		"event_ids": ids,
	})
}

func (s *Server) showVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	httputil.WriteJSONOK(w, map[string]string{
		"version":    version.Version,
		"git_sha":    version.GitSHA,
		"build_time": version.BuildTime,
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, status, and duration for each request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		monitoring.Logf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}
