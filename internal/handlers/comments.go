package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/caso-enron/comments-backend/internal/models"
	"github.com/caso-enron/comments-backend/internal/services"
	"github.com/caso-enron/comments-backend/internal/store"
	"github.com/caso-enron/comments-backend/internal/validate"
)

// OwnerTokenHeader carries the client's owner token. It is stored with the
// comment on POST and checked on DELETE.
const OwnerTokenHeader = "X-Owner-Token"

// CreateCommentRequest represents the request to publish a comment.
type CreateCommentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Text  string `json:"text"`
}

// UpdateCommentRequest represents the request to edit a comment's text.
type UpdateCommentRequest struct {
	Text string `json:"text"`
}

// ListCommentsResponse represents the response for getting all comments.
type ListCommentsResponse struct {
	Success bool             `json:"success"`
	Count   int              `json:"count"`
	Data    []models.Comment `json:"data"`
}

// CommentResponse represents the response after a comment mutation.
type CommentResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    *models.Comment `json:"data,omitempty"`
}

// ErrorResponse is the envelope for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// CommentsHandler exposes the comment service over HTTP.
type CommentsHandler struct {
	svc *services.CommentService
}

func NewCommentsHandler(svc *services.CommentService) *CommentsHandler {
	return &CommentsHandler{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// List handles GET /api/comments.
func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.svc.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to fetch comments",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, ListCommentsResponse{
		Success: true,
		Count:   len(comments),
		Data:    comments,
	})
}

// Create handles POST /api/comments.
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	ownerToken := r.Header.Get(OwnerTokenHeader)

	comment, err := h.svc.Create(r.Context(), req.Name, req.Email, req.Text, ownerToken)
	if err != nil {
		var ve *validate.Error
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: ve.Message})
			return
		}
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Message: "Failed to create comment",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusCreated, CommentResponse{
		Success: true,
		Message: "Comment published successfully",
		Data:    &comment,
	})
}

// Update handles PUT /api/comments/{id}.
func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return
	}

	comment, err := h.svc.Update(r.Context(), id, req.Text)
	if err != nil {
		var ve *validate.Error
		switch {
		case errors.As(err, &ve):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: ve.Message})
		case errors.Is(err, store.ErrNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "Comment not found"})
		default:
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Message: "Failed to update comment",
				Error:   err.Error(),
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, CommentResponse{
		Success: true,
		Message: "Comment updated successfully",
		Data:    &comment,
	})
}

// Delete handles DELETE /api/comments/{id}.
func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ownerToken := r.Header.Get(OwnerTokenHeader)

	if err := h.svc.Delete(r.Context(), id, ownerToken); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "Comment not found"})
		case errors.Is(err, store.ErrForbidden):
			writeJSON(w, http.StatusForbidden, ErrorResponse{Message: "You cannot delete a comment that is not yours"})
		default:
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{
				Message: "Failed to delete comment",
				Error:   err.Error(),
			})
		}
		return
	}

	writeJSON(w, http.StatusOK, CommentResponse{
		Success: true,
		Message: "Comment deleted successfully",
	})
}

// Health handles GET /api/health.
func (h *CommentsHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Success:   true,
		Message:   "Server is up and running",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// NotFound answers every unmatched route with the board's JSON envelope.
func (h *CommentsHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "Route not found"})
}
