package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/caso-enron/comments-backend/internal/models"
	"github.com/caso-enron/comments-backend/internal/services"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The board is public and CORS is wide open at the HTTP layer.
		return true
	},
}

// feedPingInterval must be well under feedPongWait so an idle but healthy
// connection always answers a ping before its read deadline expires.
var feedPingInterval = 30 * time.Second

const (
	feedPongWait  = 90 * time.Second
	feedWriteWait = 10 * time.Second
)

// FeedSnapshot is what the feed pushes to every connected client: the full
// current comment list, re-delivered after each mutation.
type FeedSnapshot struct {
	Type     string           `json:"type"`
	Count    int              `json:"count"`
	Comments []models.Comment `json:"comments"`
}

// FeedHandler streams comment-board snapshots over WebSocket, the server
// equivalent of the board's live subscription: clients get the current
// list on connect and again whenever any client mutates it.
type FeedHandler struct {
	svc *services.CommentService
	hub *services.FeedHub
}

func NewFeedHandler(svc *services.CommentService, hub *services.FeedHub) *FeedHandler {
	return &FeedHandler{svc: svc, hub: hub}
}

// CommentsFeed handles GET /ws/comments.
func (h *FeedHandler) CommentsFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	// Initial snapshot, then one per mutation event.
	if err := h.writeSnapshot(r, conn); err != nil {
		return
	}

	done := make(chan struct{})

	// Single writer per connection: snapshots and pings both go through
	// this goroutine. The periodic ping keeps idle connections alive on a
	// quiet board; the client's pong pushes the read deadline forward.
	go func() {
		defer close(done)
		ticker := time.NewTicker(feedPingInterval)
		defer ticker.Stop()
		for {
			select {
			case _, ok := <-events:
				if !ok {
					return
				}
				if err := h.writeSnapshot(r, conn); err != nil {
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	// Reader loop only detects disconnects and pongs; clients send nothing
	// meaningful.
	conn.SetReadLimit(4 * 1024)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(appData string) error {
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
		return nil
	})

	for {
		select {
		case <-done:
			return
		default:
		}
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	}
}

func (h *FeedHandler) writeSnapshot(r *http.Request, conn *websocket.Conn) error {
	comments, err := h.svc.List(r.Context())
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
	return conn.WriteJSON(FeedSnapshot{
		Type:     "snapshot",
		Count:    len(comments),
		Comments: comments,
	})
}
