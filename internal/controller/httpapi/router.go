package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// NewRouter собирает маршруты API поверх chi
func NewRouter(slots *SlotHandler, users *UserHandler, subjects *SubjectHandler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(RequestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, messageResponse{Message: "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/slots", func(r chi.Router) {
			r.Post("/", slots.Create)
			r.Get("/", slots.List)
			r.Get("/user/{userID}", slots.ListByUser)
			r.Get("/{id}", slots.Get)
			r.Patch("/{id}", slots.Update)
			r.Delete("/{id}", slots.Delete)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", users.Create)
			r.Get("/", users.List)
			r.Get("/{id}", users.Get)
			r.Patch("/{id}", users.Update)
			r.Delete("/{id}", users.Delete)
		})

		r.Route("/subjects", func(r chi.Router) {
			r.Post("/", subjects.Create)
			r.Get("/", subjects.List)
			r.Get("/{id}", subjects.Get)
			r.Patch("/{id}", subjects.Update)
			r.Delete("/{id}", subjects.Delete)
		})
	})

	return r
}
