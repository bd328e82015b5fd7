package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Record is one persisted jingle generation.
type Record struct {
	ID            string    `json:"id"`
	PodcastName   string    `json:"podcast_name"`
	Theme         string    `json:"theme"`
	Tone          string    `json:"tone"`
	BPM           int       `json:"bpm"`
	MusicalStyle  string    `json:"musical_style"`
	VoiceoverLine string    `json:"voiceover_line"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

// Client persists generation records to the remote history API.
type Client struct {
	apiURL string
	apiKey string
	http   *http.Client
}

// NewClient creates a history API client. An empty apiURL disables
// persistence; Enabled reports that.
func NewClient(apiURL, apiKey string) *Client {
	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether a history API is configured.
func (c *Client) Enabled() bool {
	return c.apiURL != ""
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return c.http.Do(req)
}

// Save stores one generation record.
func (c *Client) Save(ctx context.Context, rec Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL+"/records", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("history API status %d", resp.StatusCode)
	}
	return nil
}

// Recent returns the most recent records, newest first.
func (c *Client) Recent(ctx context.Context, limit int) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.apiURL+"/records?limit="+strconv.Itoa(limit), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history API status %d", resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
