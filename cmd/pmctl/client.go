package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/korylprince/proactiveshield-server/httpapi"
)

//client calls the ProactiveShield HTTP API. server is the API base URL including its prefix.
type client struct {
	server     string
	apiKey     string
	httpClient *http.Client
}

func newClient(server, apiKey string) *client {
	return &client{server: strings.TrimSuffix(server, "/"), apiKey: apiKey, httpClient: &http.Client{}}
}

//ServerError is a non-200 API response
type ServerError struct {
	Status int
	Body   httpapi.ErrorResponse
}

func (e *ServerError) Error() string {
	msg := fmt.Sprintf("server returned %d (%s)", e.Status, http.StatusText(e.Status))
	if e.Body.Kind != "" {
		msg += ": " + e.Body.Kind
	}
	if e.Body.Detail != "" {
		msg += ": " + e.Body.Detail
	}
	return msg
}

func (c *client) do(ctx context.Context, method, path string, params url.Values, body interface{}, v interface{}) error {
	u := c.server + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set(httpapi.APIKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		e := &ServerError{Status: resp.StatusCode}
		json.NewDecoder(resp.Body).Decode(&e.Body)
		return e
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *client) get(ctx context.Context, path string, params url.Values, v interface{}) error {
	return c.do(ctx, "GET", path, params, nil, v)
}

func (c *client) post(ctx context.Context, path string, body, v interface{}) error {
	return c.do(ctx, "POST", path, nil, body, v)
}

//dial opens a websocket to path, converting the server scheme to ws or wss
func (c *client) dial(ctx context.Context, path string) (*websocket.Conn, error) {
	wsURL := strings.Replace(c.server, "http://", "ws://", 1)
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)

	header := http.Header{}
	if c.apiKey != "" {
		header.Set(httpapi.APIKeyHeader, c.apiKey)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL+path, header)
	if err != nil {
		return nil, fmt.Errorf("websocket connection failed: %w", err)
	}
	return conn, nil
}
