// ABOUTME: HTTP server that resolves public sheet share links.
// ABOUTME: GET /workout/{shareId} returns the sheet JSON or a 404.
package share

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/harperreed/treino/internal/models"
	"github.com/harperreed/treino/internal/planner"
	"github.com/sirupsen/logrus"
)

// SheetFinder looks up public sheets by share id.
type SheetFinder interface {
	FindShared(shareID string) (*models.WorkoutSheet, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	sheets SheetFinder
	log    logrus.FieldLogger
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(sheets SheetFinder, log logrus.FieldLogger) *Server {
	s := &Server{
		sheets: sheets,
		log:    log,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/workout/{shareId}", s.handleSharedSheet)
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleSharedSheet(w http.ResponseWriter, r *http.Request) {
	shareID := chi.URLParam(r, "shareId")
	sheet, err := s.sheets.FindShared(shareID)
	if errors.Is(err, planner.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
		return
	}
	if err != nil {
		s.log.WithError(err).WithField("share_id", shareID).Error("lookup shared sheet")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("share server listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errc
		return nil
	}
}
