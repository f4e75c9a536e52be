// Package backend issues the initiating (non-streaming) requests to the
// mission executor: creating a mission and relaying user messages. The push
// stream itself lives in the stream package.
package backend

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

	"github.com/zulandar/missiondeck/internal/models"
)

// defaultTimeout bounds the blocking initiating round trip.
const defaultTimeout = 30 * time.Second

// Client talks to the mission executor's request/response endpoints.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a backend client for the given base URL. A nil
// http.Client gets a default with a request timeout.
func NewClient(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// createMissionRequest is the create-mission wire payload.
type createMissionRequest struct {
	Prompt string   `json:"prompt"`
	Files  []string `json:"files,omitempty"`
}

// createMissionResponse is the create-mission wire response.
type createMissionResponse struct {
	MissionID string `json:"missionId"`
}

// CreateMission submits a free-text prompt (and optional file references)
// and returns the backend-assigned mission id. The frame stream for the new
// mission follows on the events endpoint.
func (c *Client) CreateMission(ctx context.Context, prompt string, files []string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("backend: prompt is required")
	}

	var resp createMissionResponse
	err := c.post(ctx, c.baseURL+"/api/missions", createMissionRequest{Prompt: prompt, Files: files}, &resp)
	if err != nil {
		return "", fmt.Errorf("backend: create mission: %w", err)
	}
	if resp.MissionID == "" {
		return "", fmt.Errorf("backend: create mission: no mission id in response")
	}
	return resp.MissionID, nil
}

// sendMessageRequest is the user-message wire payload.
type sendMessageRequest struct {
	Text        string              `json:"text"`
	Attachments []models.Attachment `json:"attachments,omitempty"`
}

// SendMessage relays a locally authored user message to a running mission.
func (c *Client) SendMessage(ctx context.Context, missionID, text string, attachments []models.Attachment) error {
	if missionID == "" {
		return fmt.Errorf("backend: mission id is required")
	}

	endpoint := fmt.Sprintf("%s/api/missions/%s/messages", c.baseURL, url.PathEscape(missionID))
	if err := c.post(ctx, endpoint, sendMessageRequest{Text: text, Attachments: attachments}, nil); err != nil {
		return fmt.Errorf("backend: send message to %s: %w", missionID, err)
	}
	return nil
}

// post sends a JSON body and decodes a JSON response into out (when non-nil).
func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
