// Package httpserver exposes the snapshot store over the REST contract the
// clients speak: GET returns the current snapshot, POST replaces it behind
// an edit-key check.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"lookbook/internal/adapters/remotestore"
	"lookbook/internal/ports"
)

// Server serves the data endpoint.
type Server struct {
	store           ports.BlobStore
	defaultSnapshot string // path to the bundled default snapshot
	editKey         string // required write key; empty disables auth
	logger          *zap.Logger
}

// New creates a server around a blob store.
func New(store ports.BlobStore, defaultSnapshot, editKey string, logger *zap.Logger) *Server {
	return &Server{
		store:           store,
		defaultSnapshot: defaultSnapshot,
		editKey:         editKey,
		logger:          logger,
	}
}

// Setup configures all routes and middleware.
func (s *Server) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(Logger(s.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", remotestore.HeaderEditKey},
		MaxAge:         300,
	}))

	router.Get("/health", s.healthCheck)

	router.Route("/api/data", func(r chi.Router) {
		r.Get("/", s.getData)
		r.Post("/", s.postData)
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed."))
		})
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("Method not allowed."))
	})

	return router
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
