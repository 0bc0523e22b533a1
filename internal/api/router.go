package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler, webHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	// All API routes will be under /api
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/signup", apiHandler.SignupHandler)
		r.Post("/login", apiHandler.LoginHandler)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Dataset pipeline routes: filtered views, KPIs, chart aggregates,
		// filter-control options, exports.
		r.Get("/employees", apiHandler.ListEmployeesHandler)
		r.Get("/summary", apiHandler.SummaryHandler)
		r.Get("/charts", apiHandler.ChartsHandler)
		r.Get("/options", apiHandler.OptionsHandler)
		r.Get("/export", apiHandler.ExportHandler)

		// User-authenticated chat routes
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			r.Post("/chats", apiHandler.CreateChatHandler)
			r.Get("/chats", apiHandler.ListChatsHandler)
			r.Get("/chats/{chatID}", apiHandler.GetChatDetailsHandler)
			r.Post("/chats/{chatID}/messages", apiHandler.PostMessageHandler)
			r.Get("/chats/{chatID}/stream", apiHandler.StreamMessageHandler)
		})
	})

	// Server-rendered dashboard pages
	if webHandler != nil {
		r.Mount("/", webHandler)
	}

	return r
}
