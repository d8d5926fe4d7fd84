// Package remote implements the store contract against a record-store
// server speaking the JSON API under /api/expenses. The server is the
// sole source of truth; every operation is one round trip.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kharcha/internal/core"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// List implements backend.Store.
func (c *Client) List(ctx context.Context) ([]core.Expense, error) {
	var out []core.Expense
	if err := c.do(ctx, http.MethodGet, "/api/expenses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Add implements backend.Store. The draft is validated locally so an
// invalid one never leaves the process.
func (c *Client) Add(ctx context.Context, draft core.Draft) (core.Expense, error) {
	if err := draft.Validate(); err != nil {
		return core.Expense{}, err
	}
	var out core.Expense
	if err := c.do(ctx, http.MethodPost, "/api/expenses", draft, &out); err != nil {
		return core.Expense{}, err
	}
	return out, nil
}

// SetPaid implements backend.Store.
func (c *Client) SetPaid(ctx context.Context, id string, paid bool) (core.Expense, error) {
	body := struct {
		Paid bool `json:"paid"`
	}{Paid: paid}

	var out core.Expense
	if err := c.do(ctx, http.MethodPut, "/api/expenses/"+url.PathEscape(id), body, &out); err != nil {
		return core.Expense{}, err
	}
	return out, nil
}

// Remove implements backend.Store. The server treats deleting a missing
// id as success, and so does the client if an older server answers 404.
func (c *Client) Remove(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/api/expenses/"+url.PathEscape(id), nil, nil)
	if errors.Is(err, core.ErrNotFound) {
		return nil
	}
	return err
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", core.ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", core.ErrUnavailable, err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return core.ErrNotFound
	case resp.StatusCode == http.StatusUnprocessableEntity, resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", core.ErrInvalidDraft, readAPIError(resp.Body))
	default:
		return fmt.Errorf("%w: %s %s: status %d", core.ErrUnavailable, method, path, resp.StatusCode)
	}
}

func readAPIError(r io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return "request rejected"
}
