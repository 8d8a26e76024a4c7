package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"marketplace-client/internal/session"

	"github.com/google/uuid"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	BaseURL string
}

// Client calls the marketplace backend. A Client is bound to at most one
// session; WithSession returns a copy bound to another.
type Client struct {
	config  Config
	client  HTTPClient
	session session.Session
}

func New(config Config, client HTTPClient) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	return &Client{
		config: config,
		client: client,
	}
}

func (c *Client) WithSession(s session.Session) *Client {
	clone := *c
	clone.session = s
	return &clone
}

func (c *Client) Session() session.Session {
	return c.session
}

type call struct {
	op       string
	fallback string
	method   string
	path     string
	query    url.Values
	body     any
	token    string
}

func (c *Client) do(ctx context.Context, in call, out any) error {
	fail := func(status int, message string, err error) error {
		if message == "" {
			message = in.fallback
		}
		return &RequestFailure{Op: in.op, StatusCode: status, Message: message, Err: err}
	}

	target := c.config.BaseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}

	var body io.Reader
	if in.body != nil {
		payload, err := json.Marshal(in.body)
		if err != nil {
			return fail(0, "", fmt.Errorf("encode request: %w", err))
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, target, body)
	if err != nil {
		return fail(0, "", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := in.token
	if token == "" {
		token = c.session.Token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Printf("REQUEST: [%s] %s %s", requestID, in.method, in.path)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("ERROR: [%s] %s failed: %v", requestID, in.op, err)
		return fail(0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("ERROR: [%s] %s: failed to read response: %v", requestID, in.op, err)
		return fail(resp.StatusCode, "", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := serverMessage(raw)
		log.Printf("ERROR: [%s] %s returned %d: %s", requestID, in.op, resp.StatusCode, message)
		return fail(resp.StatusCode, message, nil)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("ERROR: [%s] %s: failed to decode response: %v", requestID, in.op, err)
		return fail(resp.StatusCode, "", err)
	}
	return nil
}

// serverMessage extracts the error text a backend put in a failed response:
// a JSON message or error field, a JSON string, or the plain body.
func serverMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	var fields struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(trimmed, &fields); err == nil {
		if fields.Message != "" {
			return fields.Message
		}
		return fields.Error
	}

	var text string
	if err := json.Unmarshal(trimmed, &text); err == nil {
		return text
	}

	if trimmed[0] == '{' || trimmed[0] == '[' || trimmed[0] == '<' {
		return ""
	}
	return string(trimmed)
}
