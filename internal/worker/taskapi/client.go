// Package taskapi implements the HTTP client the worker uses to talk to the
// task service: login, task retrieval, status transitions, and key material
// access.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/keygrove/ceremony/internal/common"
)

// Task mirrors the task representation served by the task service.
type Task struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Parameters string    `json:"parameters"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by"`
}

// Client is a typed HTTP client for the task service. A zero timeout on the
// underlying http.Client is deliberate: deadlines come from the caller's
// context.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL, http: &http.Client{}}
}

type errorResponse struct {
	Error string `json:"error"`
}

// doJSON performs the request and decodes a JSON response into out (when out
// is non-nil). 404 maps to common.ErrorNotFound; other non-2xx codes are
// returned as errors carrying the server-provided message when present.
func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return common.ErrorNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		if er.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, er.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/login",
		map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		return "", err
	}
	return out.Token, nil
}

// GetTask fetches the task by id. Unknown tasks yield common.ErrorNotFound.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Task, error) {
	var task Task
	if err := c.doJSON(ctx, http.MethodGet, "/internal/tasks/"+taskID, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// SetTaskStatus transitions the task to the given status.
func (c *Client) SetTaskStatus(ctx context.Context, taskID, status string) error {
	return c.doJSON(ctx, http.MethodPatch, "/internal/tasks/"+taskID+"/status",
		map[string]string{"status": status}, nil)
}

// GetUserKey returns the stored key material for the user, or
// common.ErrorNotFound when no key-generation ceremony completed yet.
func (c *Client) GetUserKey(ctx context.Context, userID string) (string, error) {
	var out struct {
		KeyData string `json:"key_data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/internal/generated_user_key/"+userID, nil, &out); err != nil {
		return "", err
	}
	return out.KeyData, nil
}

// UpsertUserKey stores key material for the user, replacing any previous key.
func (c *Client) UpsertUserKey(ctx context.Context, userID, keyData string) error {
	return c.doJSON(ctx, http.MethodPut, "/internal/generated_user_key/"+userID,
		map[string]string{"key_data": keyData}, nil)
}

// CheckToken asks the task service whether the token verifies.
func (c *Client) CheckToken(ctx context.Context, token string) (bool, error) {
	var out struct {
		Result string `json:"result"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/internal/check_token",
		map[string]string{"token": token}, &out)
	if err != nil {
		return false, err
	}
	return out.Result == "valid", nil
}
