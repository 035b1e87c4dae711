// Package api is the client's REST adapter for the AgriSmart backend. All
// outbound calls flow through an authTransport that injects the session's
// bearer credential and turns any 401 into a global forced logout. Network
// failures and 5xx responses both surface as common.ErrUnavailable so views
// can degrade to placeholder content; everything else is passed through to
// the caller unmodified, with no retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/client/session"
	"github.com/agrismart/agrismart-cli/internal/common"
	"github.com/agrismart/agrismart-cli/internal/logging"
)

type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// New builds the adapter. navigate receives the forced redirect on 401.
func New(baseURL string, sess *session.Store, navigate guard.Navigator, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &authTransport{
				session:  sess,
				navigate: navigate,
				base:     http.DefaultTransport,
			},
		},
		log: log,
	}
}

// errorBody is the backend's uniform error payload.
type errorBody struct {
	Error string `json:"error"`
}

// do performs one JSON request against the API surface. body may be nil;
// out may be nil for calls whose response the caller ignores.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + "/api" + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

// send executes a prepared request and decodes the JSON response.
func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		// network-level failure: the server is unreachable
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// the transport already cleared the session and redirected
		return common.ErrUnauthorized
	}

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if eb.Error == "" {
			eb.Error = resp.Status
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", common.ErrNotFound, eb.Error)
		}
		if resp.StatusCode >= 500 {
			// a broken server is as transient as an unreachable one;
			// views degrade to their placeholder content for both
			return fmt.Errorf("%w: %s", common.ErrUnavailable, eb.Error)
		}
		return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, eb.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrContractViolation, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}
