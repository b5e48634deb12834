package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/caso-enron/comments-backend/internal/store"
	"github.com/caso-enron/comments-backend/internal/store/memstore"
	"github.com/caso-enron/comments-backend/internal/validate"
)

func newTestService() (*CommentService, *memstore.Store, *FeedHub) {
	st := memstore.New()
	hub := NewFeedHub()
	return NewCommentService(st, NewFeedBus(hub, nil)), st, hub
}

func TestCreateThenListShowsNewCommentFirst(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "Ana", "ana@test.com", "first", "")
	require.NoError(t, err)
	created, err := svc.Create(ctx, "Luis", "luis@test.com", "second", "")
	require.NoError(t, err)

	comments, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, created.ID, comments[0].ID)
}

func TestCreateRejectsInvalidInputWithoutMutating(t *testing.T) {
	tests := []struct {
		name     string
		cName    string
		email    string
		text     string
		wantCode string
	}{
		{name: "bad email", cName: "Ana", email: "not-an-email", text: "Hola", wantCode: validate.CodeInvalidEmail},
		{name: "missing field", cName: "", email: "ana@test.com", text: "Hola", wantCode: validate.CodeMissingField},
		{name: "too long", cName: "Ana", email: "ana@test.com", text: strings.Repeat("x", 1001), wantCode: validate.CodeTextTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService()
			ctx := context.Background()

			_, err := svc.Create(ctx, tt.cName, tt.email, tt.text, "")
			var ve *validate.Error
			require.ErrorAs(t, err, &ve)
			require.Equal(t, tt.wantCode, ve.Code)

			comments, err := svc.List(ctx)
			require.NoError(t, err)
			require.Empty(t, comments, "rejected submission must not mutate the store")
		})
	}
}

func TestCreateSanitizesAllFields(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, `<b>Ana</b>`, `ana@test.com`, `<script>alert(1)</script>`, "")
	require.NoError(t, err)

	require.Equal(t, "&lt;b&gt;Ana&lt;/b&gt;", created.Name)
	require.Equal(t, "&lt;script&gt;alert(1)&lt;/script&gt;", created.Text)
	require.NotContains(t, created.Text, "<")
	require.NotContains(t, created.Text, ">")

	comments, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, created.Text, comments[0].Text)
}

func TestUpdateValidatesAndSanitizes(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ana", "ana@test.com", "Hola", "")
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, "")
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	require.Equal(t, validate.CodeMissingField, ve.Code)

	updated, err := svc.Update(ctx, created.ID, `<i>edited</i>`)
	require.NoError(t, err)
	require.Equal(t, "&lt;i&gt;edited&lt;/i&gt;", updated.Text)
	require.NotNil(t, updated.UpdatedAt)
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), "nope", "text")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ana", "ana@test.com", "Hola", "token-1")
	require.NoError(t, err)

	// A different client cannot delete it and the comment stays listed.
	err = svc.Delete(ctx, created.ID, "token-2")
	require.ErrorIs(t, err, store.ErrForbidden)

	comments, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	// The owner can.
	require.NoError(t, svc.Delete(ctx, created.ID, "token-1"))

	comments, err = svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, comments)
}

func TestDeleteWithoutOwnerTokenOnRecord(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	// Comments submitted without a token predate ownership; anyone may
	// delete them, matching the board's original behavior.
	created, err := svc.Create(ctx, "Ana", "ana@test.com", "Hola", "")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID, "any-token"))
}

func TestDeleteUnknownID(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Delete(context.Background(), "nope", "token")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMutationsPublishFeedEvents(t *testing.T) {
	svc, _, hub := newTestService()
	ctx := context.Background()

	events, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	created, err := svc.Create(ctx, "Ana", "ana@test.com", "Hola", "")
	require.NoError(t, err)

	event := <-events
	require.Equal(t, EventCreated, event.Type)
	require.Equal(t, created.ID, event.CommentID)

	_, err = svc.Update(ctx, created.ID, "edited")
	require.NoError(t, err)
	event = <-events
	require.Equal(t, EventUpdated, event.Type)

	require.NoError(t, svc.Delete(ctx, created.ID, ""))
	event = <-events
	require.Equal(t, EventDeleted, event.Type)
	require.Equal(t, created.ID, event.CommentID)
}
