package filestore

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/caso-enron/comments-backend/internal/models"
	"github.com/caso-enron/comments-backend/internal/store"
)

// Store keeps the whole comment collection as one JSON document on disk,
// re-read on every call and rewritten in full on every mutation. The mutex
// serializes writers within this process only; concurrent processes sharing
// the file still race last-writer-wins.
type Store struct {
	path string

	mu sync.Mutex
	// lastID guards against two creates landing in the same millisecond,
	// which would otherwise produce duplicate timestamp-derived ids.
	lastID int64
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) load() ([]models.Comment, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Comment{}, nil
		}
		return nil, err
	}
	var comments []models.Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, err
	}

	// Seed lastID from what is already persisted, so a store reopened in
	// the same millisecond as an existing comment cannot reuse its id.
	for _, c := range comments {
		if id, err := strconv.ParseInt(c.ID, 10, 64); err == nil && id > s.lastID {
			s.lastID = id
		}
	}
	return comments, nil
}

func (s *Store) save(comments []models.Comment) error {
	data, err := json.MarshalIndent(comments, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// List returns every comment, newest first (head insertion order).
func (s *Store) List(ctx context.Context) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Get(ctx context.Context, id string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments, err := s.load()
	if err != nil {
		return models.Comment{}, err
	}
	for _, c := range comments {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Comment{}, store.ErrNotFound
}

func (s *Store) nextID(now time.Time) string {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// Create inserts the new comment at the head of the collection and rewrites
// the file. The write either fully succeeds or leaves the previous file
// contents in place.
func (s *Store) Create(ctx context.Context, nc store.NewComment) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments, err := s.load()
	if err != nil {
		return models.Comment{}, err
	}

	now := time.Now()
	comment := models.Comment{
		ID:        s.nextID(now),
		Name:      nc.Name,
		Email:     nc.Email,
		Text:      nc.Text,
		Date:      models.DisplayDate(now),
		OwnerID:   nc.OwnerID,
		Approved:  true,
		CreatedAt: now,
	}

	comments = append([]models.Comment{comment}, comments...)
	if err := s.save(comments); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (s *Store) Update(ctx context.Context, id, text string) (models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments, err := s.load()
	if err != nil {
		return models.Comment{}, err
	}

	for i := range comments {
		if comments[i].ID != id {
			continue
		}
		now := time.Now()
		comments[i].Text = text
		comments[i].UpdatedAt = &now
		if err := s.save(comments); err != nil {
			return models.Comment{}, err
		}
		return comments[i], nil
	}
	return models.Comment{}, store.ErrNotFound
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments, err := s.load()
	if err != nil {
		return err
	}

	filtered := comments[:0:0]
	for _, c := range comments {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == len(comments) {
		return store.ErrNotFound
	}
	return s.save(filtered)
}
