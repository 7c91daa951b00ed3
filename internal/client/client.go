package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"taskdeck/internal/form"
	"taskdeck/internal/models"
	"taskdeck/internal/utils"
)

// Client talks to the task API. It implements the form controller's
// TagLister, TaskCreator and AuthState collaborators.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	token string
}

// New creates a client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs an access token for subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current access token.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// IsLoggedIn reports whether an access token is installed.
func (c *Client) IsLoggedIn() bool {
	return c.Token() != ""
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	payload := map[string]string{"username": username, "email": email, "password": password}
	return c.doJSON(ctx, http.MethodPost, "/auth/register", "", payload, nil)
}

// Login exchanges credentials for an access token and installs it.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", payload, &resp); err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

// ListTags returns the selectable tags.
func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var resp struct {
		Data []models.Tag `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/tags", c.Token(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateTask performs the create-task mutation with the request's own token.
func (c *Client) CreateTask(ctx context.Context, req form.CreateTaskRequest) error {
	payload := map[string]any{
		"title":   req.Title,
		"content": req.Content,
		"tagId":   req.TagID,
		"status":  req.Status,
	}
	return c.doJSON(ctx, http.MethodPost, "/tasks", req.Token, payload, nil)
}

// ListTasks returns the logged-in user's tasks joined with tag names.
func (c *Client) ListTasks(ctx context.Context) ([]models.TaskRow, error) {
	var resp struct {
		Data []models.TaskRow `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/tasks", c.Token(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// UpdateTask updates the given fields of a task; nil pointers are unchanged.
func (c *Client) UpdateTask(ctx context.Context, id int, title, content *string, status *models.TaskStatus) error {
	payload := map[string]any{}
	if title != nil {
		payload["title"] = *title
	}
	if content != nil {
		payload["content"] = *content
	}
	if status != nil {
		payload["status"] = *status
	}
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/tasks/%d", id), c.Token(), payload, nil)
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), c.Token(), nil, nil)
}

// doJSON sends one JSON request and decodes the response into out (if non-nil).
// Non-2xx responses become *utils.CustomError carrying the server's message.
func (c *Client) doJSON(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// apiError turns an error response into a CustomError with the server message.
func apiError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)
	var msg struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(b, &msg); err == nil && msg.Message != "" {
		return utils.New(resp.StatusCode, msg.Message)
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		text = resp.Status
	}
	return utils.New(resp.StatusCode, text)
}
