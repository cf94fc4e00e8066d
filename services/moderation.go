package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"barbershop-backend/config"
)

// Moderator classifies free text into category -> risk score in [0,1].
type Moderator interface {
	Classify(ctx context.Context, text string) (map[string]float64, error)
}

// MistralModerator calls the Mistral moderation endpoint.
type MistralModerator struct {
	apiKey   string
	endpoint string
	model    string
	client   *http.Client
}

func NewMistralModerator(cfg config.ModerationConfig) *MistralModerator {
	return &MistralModerator{
		apiKey:   cfg.APIKey,
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type moderationRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type moderationResponse struct {
	Results []struct {
		CategoryScores map[string]float64 `json:"category_scores"`
	} `json:"results"`
}

func (m *MistralModerator) Classify(ctx context.Context, text string) (map[string]float64, error) {
	payload, err := json.Marshal(moderationRequest{
		Model: m.model,
		Input: []string{text},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moderation request: unexpected status %d", resp.StatusCode)
	}

	var decoded moderationResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("moderation response: %w", err)
	}
	if len(decoded.Results) == 0 {
		return nil, fmt.Errorf("moderation response: no results")
	}

	return decoded.Results[0].CategoryScores, nil
}

// Acceptable applies the threshold rule: a configured category fails when
// its score is at or above the threshold, and the text is acceptable only
// when no configured category fails. Categories without a threshold are
// ignored.
func Acceptable(scores, thresholds map[string]float64) bool {
	for category, limit := range thresholds {
		if score, ok := scores[category]; ok && score >= limit {
			return false
		}
	}
	return true
}
