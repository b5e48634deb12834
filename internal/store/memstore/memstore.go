package memstore

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/caso-enron/comments-backend/internal/models"
	"github.com/caso-enron/comments-backend/internal/store"
)

// Store holds the comment collection in memory, newest first. It mirrors
// the browser local-storage variant of the board and doubles as the store
// used in tests and throwaway deployments. Nothing survives a restart.
type Store struct {
	mu       sync.RWMutex
	comments []models.Comment
	lastID   int64
}

func New() *Store {
	return &Store{comments: []models.Comment{}}
}

func (s *Store) List(ctx context.Context) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Comment, len(s.comments))
	copy(out, s.comments)
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Comment{}, store.ErrNotFound
}

func (s *Store) Create(ctx context.Context, nc store.NewComment) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	comment := models.Comment{
		ID:        strconv.FormatInt(id, 10),
		Name:      nc.Name,
		Email:     nc.Email,
		Text:      nc.Text,
		Date:      models.DisplayDate(now),
		OwnerID:   nc.OwnerID,
		Approved:  true,
		CreatedAt: now,
	}

	s.comments = append([]models.Comment{comment}, s.comments...)
	return comment, nil
}

func (s *Store) Update(ctx context.Context, id, text string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.comments {
		if s.comments[i].ID != id {
			continue
		}
		now := time.Now()
		s.comments[i].Text = text
		s.comments[i].UpdatedAt = &now
		return s.comments[i], nil
	}
	return models.Comment{}, store.ErrNotFound
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.comments {
		if c.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
