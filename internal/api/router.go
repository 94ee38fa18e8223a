package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(apiHandler *APIHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Use(originAllowlist(allowedOrigins))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/process_question", apiHandler.ProcessQuestionHandler)
	r.Post("/storeChat", apiHandler.StoreChatHandler)
	r.Get("/faqs", apiHandler.FAQsHandler)
	r.Put("/updateFeedback/{id}", apiHandler.UpdateFeedbackHandler)

	return r
}

// originAllowlist rejects browser requests whose Origin is outside the
// configured list before they reach any route. Requests without an Origin
// header (curl, server-to-server) pass through.
func originAllowlist(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				if _, ok := allowed[origin]; !ok {
					respondError(w, http.StatusForbidden, "Not allowed by CORS")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
