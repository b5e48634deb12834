package services

import (
	"context"

	"github.com/caso-enron/comments-backend/internal/models"
	"github.com/caso-enron/comments-backend/internal/sanitize"
	"github.com/caso-enron/comments-backend/internal/store"
	"github.com/caso-enron/comments-backend/internal/validate"
)

// CommentService runs the board's comment lifecycle over whichever store
// the deployment is configured with: validate, sanitize, persist, and fan
// the mutation out to live-feed subscribers. Validation failures happen
// before any store call, so a rejected submission never mutates state.
type CommentService struct {
	store store.Store
	feed  *FeedBus
}

// NewCommentService wires a store and an optional feed bus (nil disables
// live-feed events).
func NewCommentService(st store.Store, feed *FeedBus) *CommentService {
	return &CommentService{store: st, feed: feed}
}

// List returns all comments, newest first.
func (s *CommentService) List(ctx context.Context) ([]models.Comment, error) {
	return s.store.List(ctx)
}

// Create validates and sanitizes a submission, then persists it at the
// head of the collection. ownerID is the submitter's per-client token and
// may be empty.
func (s *CommentService) Create(ctx context.Context, name, email, text, ownerID string) (models.Comment, error) {
	if err := validate.Comment(name, email, text); err != nil {
		return models.Comment{}, err
	}

	comment, err := s.store.Create(ctx, store.NewComment{
		Name:    sanitize.HTML(name),
		Email:   sanitize.HTML(email),
		Text:    sanitize.HTML(text),
		OwnerID: ownerID,
	})
	if err != nil {
		return models.Comment{}, err
	}

	s.publish(ctx, EventCreated, comment.ID)
	return comment, nil
}

// Update replaces a comment's text and stamps its update time.
func (s *CommentService) Update(ctx context.Context, id, text string) (models.Comment, error) {
	if err := validate.Text(text); err != nil {
		return models.Comment{}, err
	}

	comment, err := s.store.Update(ctx, id, sanitize.HTML(text))
	if err != nil {
		return models.Comment{}, err
	}

	s.publish(ctx, EventUpdated, comment.ID)
	return comment, nil
}

// Delete removes a comment. When the stored record carries an owner token,
// the requester's token must match or the call fails with ErrForbidden and
// the record is untouched. Records without a token are deleted
// unconditionally, matching the board's original trust boundary for
// comments submitted before owner tokens existed.
func (s *CommentService) Delete(ctx context.Context, id, ownerToken string) error {
	comment, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}

	if comment.OwnerID != "" && comment.OwnerID != ownerToken {
		return store.ErrForbidden
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, EventDeleted, id)
	return nil
}

func (s *CommentService) publish(ctx context.Context, eventType, commentID string) {
	if s.feed == nil {
		return
	}
	s.feed.Publish(ctx, eventType, commentID)
}
