package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HttpClient is a thin JSON client over one base URL. It exists for
// integration tests and smoke tooling, not for production call paths.
type HttpClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHttpClient(baseURL string) *HttpClient {
	return &HttpClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Response pairs the raw http.Response with its fully-read body, so callers
// can decode it as many times as they like.
type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (r *Response) ToString() string {
	return fmt.Sprintf("status=%d body=%s", r.StatusCode, string(r.Body))
}

func (c *HttpClient) GET(path string) (*Response, error) {
	return c.do(http.MethodGet, path, nil, "", nil)
}

func (c *HttpClient) DELETE(path string) (*Response, error) {
	return c.do(http.MethodDelete, path, nil, "", nil)
}

func (c *HttpClient) POST(path string, body any) (*Response, error) {
	return c.sendJSON(http.MethodPost, path, body, nil)
}

func (c *HttpClient) PUT(path string, body any) (*Response, error) {
	return c.sendJSON(http.MethodPut, path, body, nil)
}

func (c *HttpClient) POSTWithHeaders(path string, body any, headers map[string]string) (*Response, error) {
	return c.sendJSON(http.MethodPost, path, body, headers)
}

// POSTRaw sends the bytes untouched, for probing how the server handles
// bodies that do not decode.
func (c *HttpClient) POSTRaw(path string, rawBody []byte) (*Response, error) {
	return c.do(http.MethodPost, path, bytes.NewReader(rawBody), "application/json", nil)
}

func (c *HttpClient) PUTRaw(path string, rawBody []byte) (*Response, error) {
	return c.do(http.MethodPut, path, bytes.NewReader(rawBody), "application/json", nil)
}

func (c *HttpClient) sendJSON(method, path string, body any, headers map[string]string) (*Response, error) {
	if body == nil {
		return c.do(method, path, nil, "", headers)
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return c.do(method, path, bytes.NewReader(encoded), "application/json", headers)
}

func (c *HttpClient) do(method, path string, body io.Reader, contentType string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(context.Background(), method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{Response: resp, Body: respBody}, nil
}

// WaitForHealthy polls /health until it answers 200 or maxWait elapses.
func (c *HttpClient) WaitForHealthy(maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)

	for time.Now().Before(deadline) {
		resp, err := c.HTTPClient.Get(c.BaseURL + "/health")
		if resp != nil {
			resp.Body.Close()
		}
		if err == nil && resp.StatusCode == http.StatusOK {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}

	return fmt.Errorf("service did not become healthy within %v", maxWait)
}

// GetErrorMessage pulls the most specific message out of an error payload,
// whichever of the known envelope fields it arrived under.
func GetErrorMessage(resp *Response) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	if err := resp.DecodeJSON(&envelope); err != nil {
		return fmt.Sprintf("failed to unmarshal error: %v", err)
	}

	for _, candidate := range []string{envelope.Message, envelope.Error, envelope.Code} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}
