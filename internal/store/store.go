package store

import (
	"context"
	"errors"

	"github.com/caso-enron/comments-backend/internal/models"
)

// ErrNotFound is returned when an operation references a comment id that
// does not exist in the store.
var ErrNotFound = errors.New("comment not found")

// ErrForbidden is returned when a delete is attempted by a requester that
// cannot prove ownership of the comment.
var ErrForbidden = errors.New("comment does not belong to requester")

// NewComment is the input to Store.Create. Fields are expected to be
// validated and sanitized already; stores persist them verbatim.
type NewComment struct {
	Name    string
	Email   string
	Text    string
	OwnerID string
}

// Store persists the ordered comment collection. Implementations assign
// their own ids and keep the listing order newest-first. Update and Delete
// of an unknown id return ErrNotFound on every backend.
type Store interface {
	List(ctx context.Context) ([]models.Comment, error)
	Get(ctx context.Context, id string) (models.Comment, error)
	Create(ctx context.Context, nc NewComment) (models.Comment, error)
	Update(ctx context.Context, id, text string) (models.Comment, error)
	Delete(ctx context.Context, id string) error
}
