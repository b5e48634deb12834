package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/caso-enron/comments-backend/internal/models"
	"github.com/caso-enron/comments-backend/internal/store"
)

// Store persists comments in the `comments` table (created on connect by
// the database package). Rows are listed by created_at descending so the
// newest comment is always first.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectColumns = `id, name, email, text, date, owner_id, approved, created_at, updated_at`

func scanComment(row interface{ Scan(...interface{}) error }) (models.Comment, error) {
	var c models.Comment
	var updatedAt sql.NullTime
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Text, &c.Date, &c.OwnerID, &c.Approved, &c.CreatedAt, &updatedAt)
	if err != nil {
		return models.Comment{}, err
	}
	if updatedAt.Valid {
		c.UpdatedAt = &updatedAt.Time
	}
	return c, nil
}

func (s *Store) List(ctx context.Context) ([]models.Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+selectColumns+`
		FROM comments
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (models.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+selectColumns+`
		FROM comments
		WHERE id = $1
	`, id)

	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Comment{}, store.ErrNotFound
	}
	return c, err
}

func (s *Store) Create(ctx context.Context, nc store.NewComment) (models.Comment, error) {
	now := time.Now()
	comment := models.Comment{
		ID:        uuid.New().String(),
		Name:      nc.Name,
		Email:     nc.Email,
		Text:      nc.Text,
		Date:      models.DisplayDate(now),
		OwnerID:   nc.OwnerID,
		Approved:  true,
		CreatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, name, email, text, date, owner_id, approved, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, comment.ID, comment.Name, comment.Email, comment.Text, comment.Date, comment.OwnerID, comment.Approved, comment.CreatedAt)
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (s *Store) Update(ctx context.Context, id, text string) (models.Comment, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE comments
		SET text = $2, updated_at = $3
		WHERE id = $1
		RETURNING `+selectColumns+`
	`, id, text, time.Now())

	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Comment{}, store.ErrNotFound
	}
	return c, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
