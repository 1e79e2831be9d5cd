package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/courtsidehq/courtside/internal/metrics"
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("not found")

// APIClient is an HTTP client for the padel backend API.
type APIClient struct {
	httpClient *http.Client
	metrics    metrics.Metrics
	BaseURL    string
}

var _ Client = (*APIClient)(nil)

// NewClient creates a new backend API client. Per-call deadlines come from
// the caller's context; the transport timeout is a safety net.
func NewClient(baseURL string, metricsSvc metrics.Metrics) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		metrics:    metricsSvc,
		BaseURL:    baseURL,
	}
}

// RegisterPlayer upserts a player by their Telegram id.
func (c *APIClient) RegisterPlayer(ctx context.Context, params RegisterPlayerParams) (Player, error) {
	var player Player
	err := c.postJSON(ctx, "/players/register", params, &player)
	return player, err
}

// GetPlayerByTgID fetches a player's stored profile.
func (c *APIClient) GetPlayerByTgID(ctx context.Context, tgID int64) (Player, error) {
	url := fmt.Sprintf("%s/players/by_tg/%d", c.BaseURL, tgID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Player{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncBotCallsFailed()
		return Player{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.metrics.IncBotCallsSent()
		return Player{}, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.metrics.IncBotCallsFailed()
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from backend", "status", resp.StatusCode, "body", string(body))
		return Player{}, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	var player Player
	if err := json.NewDecoder(resp.Body).Decode(&player); err != nil {
		c.metrics.IncBotCallsFailed()
		return Player{}, fmt.Errorf("failed to decode response: %w", err)
	}
	c.metrics.IncBotCallsSent()
	return player, nil
}

// RegisterChat registers or refreshes a chat row.
func (c *APIClient) RegisterChat(ctx context.Context, params RegisterChatParams) (ChatRegistration, error) {
	var registration ChatRegistration
	err := c.postJSON(ctx, "/bot/chats/register", params, &registration)
	return registration, err
}

// SyncMembers reports a membership snapshot for reconciliation.
func (c *APIClient) SyncMembers(ctx context.Context, tgChatID int64, members []Member) (SyncSummary, error) {
	payload := struct {
		TgChatID int64    `json:"tg_chat_id"`
		Members  []Member `json:"members"`
	}{TgChatID: tgChatID, Members: members}

	var summary SyncSummary
	err := c.postJSON(ctx, "/bot/chats/members/sync", payload, &summary)
	return summary, err
}

// UpdateMember reports a single membership event.
func (c *APIClient) UpdateMember(ctx context.Context, params UpdateMemberParams) error {
	return c.postJSON(ctx, "/bot/chats/members/update", params, nil)
}

func (c *APIClient) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug("Calling backend API", "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.IncBotCallsFailed()
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.IncBotCallsFailed()
		respBody, _ := io.ReadAll(resp.Body)
		log.Error("Received non-OK HTTP status from backend", "path", path, "status", resp.StatusCode, "body", string(respBody))
		return fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.metrics.IncBotCallsFailed()
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	c.metrics.IncBotCallsSent()
	return nil
}
