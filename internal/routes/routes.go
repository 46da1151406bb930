package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kunalgoyal9/gembot-backend/internal/handlers"
)

// Setup binds the auth and chatbot endpoints. verify is the token verification
// middleware applied to every protected route.
func Setup(r *chi.Mux, authHandler *handlers.AuthHandler, chatHandler *handlers.ChatHandler, verify func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(verify)
			r.Post("/logout", authHandler.Logout)
			r.Get("/", authHandler.GetUser)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(verify)
		r.Post("/chatBot", chatHandler.SendMessage)
		r.Get("/chatBot", chatHandler.GetHistory)
	})

	// WebSocket chat gateway; authenticates before the upgrade.
	r.Get("/ws/chat", chatHandler.ChatSocket)
}
