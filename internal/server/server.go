// Package server exposes the support chat system as a JSON HTTP API:
// session lifecycle, chat turns, transcript export, evaluation results,
// experiment tracking lookups, and the dictionary translator.
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/flightline-ai/supportbench/infrastructure/retrieval"
	"github.com/flightline-ai/supportbench/infrastructure/tracking"
	"github.com/flightline-ai/supportbench/internal/session"
)

// A Route defines the parameters for an api endpoint.
type Route struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// Routes is the list of api endpoints served by a Server.
type Routes []Route

// Server wires the chat service and its supporting reads into an HTTP
// API. The tracking client and translator are optional; their routes
// return 503 and 404 respectively when the dependency is absent.
type Server struct {
	sessions    *session.Manager
	chat        *session.Chat
	resultsPath string
	tracking    *tracking.Client
	translator  *retrieval.Translator
	metrics     http.Handler
}

// Option configures optional Server dependencies.
type Option func(*Server)

// WithTracking attaches an experiment tracking client for the
// /api/tracking routes.
func WithTracking(c *tracking.Client) Option {
	return func(s *Server) { s.tracking = c }
}

// WithTranslator enables the dictionary translation route.
func WithTranslator(t *retrieval.Translator) Option {
	return func(s *Server) { s.translator = t }
}

// WithMetricsHandler mounts the given handler at /metrics, typically
// promhttp.HandlerFor on the process registry.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// New creates a Server around a session manager and chat service.
// resultsPath is the evaluation results file served by /api/results.
func New(sessions *session.Manager, chat *session.Chat, resultsPath string, opts ...Option) *Server {
	s := &Server{
		sessions:    sessions,
		chat:        chat,
		resultsPath: resultsPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the api endpoints in registration order.
func (s *Server) Routes() Routes {
	return Routes{
		{"CreateSession", http.MethodPost, "/api/sessions", errHandler(s.createSession)},
		{"GetSession", http.MethodGet, "/api/sessions/{id}", errHandler(s.getSession)},
		{"DeleteSession", http.MethodDelete, "/api/sessions/{id}", errHandler(s.deleteSession)},
		{"ResetSession", http.MethodPost, "/api/sessions/{id}/reset", errHandler(s.resetSession)},
		{"PostMessage", http.MethodPost, "/api/sessions/{id}/messages", errHandler(s.postMessage)},
		{"GetTranscript", http.MethodGet, "/api/sessions/{id}/transcript", errHandler(s.getTranscript)},
		{"ListExamples", http.MethodGet, "/api/examples", errHandler(s.listExamples)},
		{"GetResults", http.MethodGet, "/api/results", errHandler(s.getResults)},
		{"ListExperiments", http.MethodGet, "/api/tracking/experiments", errHandler(s.listExperiments)},
		{"ListRuns", http.MethodGet, "/api/tracking/experiments/{id}/runs", errHandler(s.listRuns)},
		{"Translate", http.MethodPost, "/api/translate", errHandler(s.translate)},
		{"Healthz", http.MethodGet, "/healthz", s.healthz},
	}
}

// Router builds the mux router for the server, including the optional
// /metrics mount.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	for _, route := range s.Routes() {
		var handler http.Handler = route.HandlerFunc
		handler = requestLogger(handler, route.Name)

		router.
			Methods(route.Method).
			Path(route.Pattern).
			Name(route.Name).
			Handler(handler)
	}
	if s.metrics != nil {
		router.Methods(http.MethodGet).Path("/metrics").Handler(s.metrics)
	}
	return router
}

func requestLogger(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		inner.ServeHTTP(w, r)
		log.Printf("%s %s %s %s", r.Method, r.RequestURI, name, time.Since(start))
	})
}
