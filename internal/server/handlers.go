package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"

	"github.com/flightline-ai/supportbench/infrastructure/tracking"
	"github.com/flightline-ai/supportbench/internal/domain"
	"github.com/flightline-ai/supportbench/internal/evaluation"
	"github.com/flightline-ai/supportbench/internal/session"
)

// StatusError carries an HTTP status code alongside an error.
type StatusError struct {
	error
	Code int
}

// Unwrap returns the underlying error.
func (se StatusError) Unwrap() error { return se.error }

// Status returns the associated HTTP status code.
func (se StatusError) Status() int { return se.Code }

func statusErrorf(code int, format string, args ...any) StatusError {
	return StatusError{error: fmt.Errorf(format, args...), Code: code}
}

type errorResponse struct {
	Error string `json:"error"`
}

// errHandler converts an error-returning handler into an
// http.HandlerFunc, translating domain errors to status codes.
func errHandler(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		writeJSON(w, statusOf(err), errorResponse{Error: err.Error()})
	}
}

func statusOf(err error) int {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status()
	}

	var agentErr *domain.AgentError
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSessionBusy):
		return http.StatusConflict
	case errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.As(err, &agentErr):
		return http.StatusBadGateway
	case errors.Is(err, tracking.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already committed, so an encode failure here
	// can only be reported by dropping the connection.
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return statusErrorf(http.StatusBadRequest, "invalid request body: %v", err)
	}
	return nil
}

type sessionResponse struct {
	ID       string            `json:"id"`
	State    session.State     `json:"state"`
	Stats    session.Stats     `json:"stats"`
	Messages []session.Message `json:"messages"`
}

func sessionResponseOf(s *session.Session) sessionResponse {
	return sessionResponse{
		ID:       s.ID(),
		State:    s.State(),
		Stats:    s.Stats(),
		Messages: s.Messages(),
	}
}

func (s *Server) createSession(w http.ResponseWriter, _ *http.Request) error {
	sess := s.sessions.Create()
	writeJSON(w, http.StatusCreated, sessionResponseOf(sess))
	return nil
}

func (s *Server) session(r *http.Request) (*session.Session, error) {
	return s.sessions.Get(mux.Vars(r)["id"])
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, sessionResponseOf(sess))
	return nil
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) error {
	if _, err := s.session(r); err != nil {
		return err
	}
	s.sessions.Delete(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (s *Server) resetSession(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}
	sess.Reset()
	writeJSON(w, http.StatusOK, sessionResponseOf(sess))
	return nil
}

type messageRequest struct {
	Query string `json:"query"`
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}

	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	msg, err := s.chat.Ask(r.Context(), sess, req.Query)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, msg)
	return nil
}

func (s *Server) getTranscript(w http.ResponseWriter, r *http.Request) error {
	sess, err := s.session(r)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err = fmt.Fprint(w, sess.Transcript())
	return err
}

func (s *Server) listExamples(w http.ResponseWriter, _ *http.Request) error {
	writeJSON(w, http.StatusOK, session.ExampleQueries())
	return nil
}

func (s *Server) getResults(w http.ResponseWriter, _ *http.Request) error {
	summary, err := evaluation.LoadSummary(s.resultsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return statusErrorf(http.StatusNotFound, "no evaluation results recorded yet")
		}
		return err
	}
	writeJSON(w, http.StatusOK, summary)
	return nil
}

func (s *Server) listExperiments(w http.ResponseWriter, r *http.Request) error {
	if s.tracking == nil {
		return statusErrorf(http.StatusServiceUnavailable, "experiment tracking is not configured")
	}
	experiments, err := s.tracking.SearchExperiments(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, experiments)
	return nil
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) error {
	if s.tracking == nil {
		return statusErrorf(http.StatusServiceUnavailable, "experiment tracking is not configured")
	}
	runs, err := s.tracking.SearchRuns(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, runs)
	return nil
}

type translateRequest struct {
	Question string `json:"question"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

func (s *Server) translate(w http.ResponseWriter, r *http.Request) error {
	if s.translator == nil {
		return statusErrorf(http.StatusNotFound, "translation is not configured")
	}

	var req translateRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Question) == "" {
		return statusErrorf(http.StatusBadRequest, "question must not be empty")
	}

	translation, err := s.translator.Translate(r.Context(), req.Question)
	if err != nil {
		return statusErrorf(http.StatusBadGateway, "translating question: %v", err)
	}
	writeJSON(w, http.StatusOK, translateResponse{Translation: translation})
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Count(),
	})
}
