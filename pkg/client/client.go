package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/caso-enron/comments-backend/internal/handlers"
	"github.com/caso-enron/comments-backend/internal/models"
	"github.com/caso-enron/comments-backend/internal/validate"
)

// Client talks to the comment board API on behalf of one local user. It
// holds the per-user owner token (generated once and persisted under the
// user config dir) and the last email used to post, which serves as the
// legacy ownership fallback for comments that predate owner tokens.
type Client struct {
	baseURL    string
	httpClient *http.Client
	configDir  string

	ownerToken string
	email      string
}

// APIError is a non-2xx response from the board.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// New returns a client for the board at baseURL, loading or creating the
// local owner token.
func New(baseURL string) (*Client, error) {
	dir, err := defaultConfigDir()
	if err != nil {
		return nil, err
	}
	return newWithConfigDir(baseURL, dir)
}

func newWithConfigDir(baseURL, configDir string) (*Client, error) {
	token, err := loadOrCreateOwnerToken(configDir)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		configDir:  configDir,
		ownerToken: token,
		email:      loadLastEmail(configDir),
	}, nil
}

// OwnerToken returns this client's persistent owner token.
func (c *Client) OwnerToken() string {
	return c.ownerToken
}

// Ping checks the board is reachable before first use. This is the
// explicit initialization signal: one bounded request, no readiness polling.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var resp handlers.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &resp); err != nil {
		return fmt.Errorf("comment board is not reachable: %w", err)
	}
	return nil
}

// List fetches every comment, newest first.
func (c *Client) List(ctx context.Context) ([]models.Comment, error) {
	var resp handlers.ListCommentsResponse
	if err := c.do(ctx, http.MethodGet, "/api/comments", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Post validates the submission locally (mirroring the server's checks, so
// obviously bad input never leaves the machine), publishes it with this
// client's owner token, and remembers the email for the ownership fallback.
func (c *Client) Post(ctx context.Context, name, email, text string) (models.Comment, error) {
	if err := validate.Comment(name, email, text); err != nil {
		return models.Comment{}, err
	}

	var resp handlers.CommentResponse
	req := handlers.CreateCommentRequest{Name: name, Email: email, Text: text}
	if err := c.do(ctx, http.MethodPost, "/api/comments", req, &resp); err != nil {
		return models.Comment{}, err
	}

	c.email = email
	saveLastEmail(c.configDir, email)

	if resp.Data == nil {
		return models.Comment{}, fmt.Errorf("server returned no comment data")
	}
	return *resp.Data, nil
}

// Edit replaces a comment's text.
func (c *Client) Edit(ctx context.Context, id, text string) (models.Comment, error) {
	if err := validate.Text(text); err != nil {
		return models.Comment{}, err
	}

	var resp handlers.CommentResponse
	req := handlers.UpdateCommentRequest{Text: text}
	if err := c.do(ctx, http.MethodPut, "/api/comments/"+id, req, &resp); err != nil {
		return models.Comment{}, err
	}
	if resp.Data == nil {
		return models.Comment{}, fmt.Errorf("server returned no comment data")
	}
	return *resp.Data, nil
}

// Delete removes a comment, presenting this client's owner token.
func (c *Client) Delete(ctx context.Context, id string) error {
	var resp handlers.CommentResponse
	return c.do(ctx, http.MethodDelete, "/api/comments/"+id, nil, &resp)
}

// Owns reports whether this client can claim the comment: its owner token
// matches, or the comment predates owner tokens and was posted with the
// same email this client last used.
func (c *Client) Owns(comment models.Comment) bool {
	if comment.OwnerID != "" {
		return comment.OwnerID == c.ownerToken
	}
	return c.email != "" && comment.Email == c.email
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handlers.OwnerTokenHeader, c.ownerToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr handlers.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
