package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/caso-enron/comments-backend/internal/handlers"
	"github.com/caso-enron/comments-backend/internal/routes"
	"github.com/caso-enron/comments-backend/internal/services"
	"github.com/caso-enron/comments-backend/internal/store/memstore"
	"github.com/caso-enron/comments-backend/internal/validate"
)

func newTestBoard(t *testing.T) *httptest.Server {
	t.Helper()

	st := memstore.New()
	hub := services.NewFeedHub()
	svc := services.NewCommentService(st, services.NewFeedBus(hub, nil))

	r := chi.NewRouter()
	routes.SetupRoutes(r, handlers.NewCommentsHandler(svc), handlers.NewFeedHandler(svc, hub))

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

func TestOwnerTokenIsPersistent(t *testing.T) {
	dir := t.TempDir()

	first, err := newWithConfigDir("http://unused", dir)
	require.NoError(t, err)
	require.NotEmpty(t, first.OwnerToken())

	second, err := newWithConfigDir("http://unused", dir)
	require.NoError(t, err)
	require.Equal(t, first.OwnerToken(), second.OwnerToken())

	other, err := newWithConfigDir("http://unused", t.TempDir())
	require.NoError(t, err)
	require.NotEqual(t, first.OwnerToken(), other.OwnerToken())
}

func TestPing(t *testing.T) {
	server := newTestBoard(t)

	c, err := newWithConfigDir(server.URL, t.TempDir())
	require.NoError(t, err)
	require.NoError(t, c.Ping(context.Background()))

	unreachable, err := newWithConfigDir("http://127.0.0.1:1", t.TempDir())
	require.NoError(t, err)
	require.Error(t, unreachable.Ping(context.Background()))
}

func TestPostRejectsInvalidInputLocally(t *testing.T) {
	// No server at all: local validation must fail before any request.
	c, err := newWithConfigDir("http://127.0.0.1:1", t.TempDir())
	require.NoError(t, err)

	_, err = c.Post(context.Background(), "Ana", "not-an-email", "Hola")
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	require.Equal(t, validate.CodeInvalidEmail, ve.Code)
}

func TestPostListDeleteFlow(t *testing.T) {
	server := newTestBoard(t)
	ctx := context.Background()

	c, err := newWithConfigDir(server.URL, t.TempDir())
	require.NoError(t, err)

	created, err := c.Post(ctx, "Ana", "ana@test.com", "Hola")
	require.NoError(t, err)
	require.Equal(t, c.OwnerToken(), created.OwnerID)
	require.True(t, created.Approved)

	comments, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	require.True(t, c.Owns(comments[0]))

	require.NoError(t, c.Delete(ctx, created.ID))

	comments, err = c.List(ctx)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func TestServerRefusesForeignDelete(t *testing.T) {
	server := newTestBoard(t)
	ctx := context.Background()

	owner, err := newWithConfigDir(server.URL, t.TempDir())
	require.NoError(t, err)
	stranger, err := newWithConfigDir(server.URL, t.TempDir())
	require.NoError(t, err)

	created, err := owner.Post(ctx, "Ana", "ana@test.com", "Hola")
	require.NoError(t, err)

	// The stranger neither owns the comment locally nor passes the
	// server's token check.
	require.False(t, stranger.Owns(created))

	err = stranger.Delete(ctx, created.ID)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, 403, apiErr.Status)

	comments, err := owner.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)
}

func TestOwnsEmailFallback(t *testing.T) {
	server := newTestBoard(t)
	ctx := context.Background()

	c, err := newWithConfigDir(server.URL, t.TempDir())
	require.NoError(t, err)

	_, err = c.Post(ctx, "Ana", "ana@test.com", "Hola")
	require.NoError(t, err)

	comments, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	// A comment with no owner token but a matching email counts as ours;
	// this covers records that predate owner tokens.
	legacy := comments[0]
	legacy.OwnerID = ""
	require.True(t, c.Owns(legacy))

	legacy.Email = "someone-else@test.com"
	require.False(t, c.Owns(legacy))
}
