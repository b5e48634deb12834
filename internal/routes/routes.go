package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/caso-enron/comments-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux, comments *handlers.CommentsHandler, feed *handlers.FeedHandler) {
	// Comment board routes
	r.Get("/api/comments", comments.List)
	r.Post("/api/comments", comments.Create)
	r.Put("/api/comments/{id}", comments.Update)
	r.Delete("/api/comments/{id}", comments.Delete)

	// Health check
	r.Get("/api/health", comments.Health)

	// WebSocket endpoint for the live comment feed
	r.Get("/ws/comments", feed.CommentsFeed)

	// Unmatched routes get the board's JSON envelope, not chi's plain 404
	r.NotFound(comments.NotFound)
}
