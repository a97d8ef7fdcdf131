package courseforge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client talks to a running server's external API. Authentication is the
// shared API key sent in the X-API-Key header.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Envelope is the external API response wrapper.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		Total     *int      `json:"total"`
		Timestamp time.Time `json:"timestamp"`
	} `json:"meta"`
}

func (c *Client) get(ctx context.Context, path string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("request %s failed with status %d", path, res.StatusCode)
	}

	var envelope Envelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return err
	}
	if !envelope.Success {
		return fmt.Errorf("request %s was not successful", path)
	}

	return json.Unmarshal(envelope.Data, into)
}

// ListCourses fetches every course with curriculum and page metadata.
func (c *Client) ListCourses(ctx context.Context, into any) error {
	return c.get(ctx, "/api/external/courses", into)
}

// GetCourse fetches one course tree with full page content.
func (c *Client) GetCourse(ctx context.Context, courseID string, into any) error {
	return c.get(ctx, "/api/external/courses/"+courseID, into)
}

// GetPage fetches one page with its curriculum and course context.
func (c *Client) GetPage(ctx context.Context, pageID string, into any) error {
	return c.get(ctx, "/api/external/pages/"+pageID, into)
}
