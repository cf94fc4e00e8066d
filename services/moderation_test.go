package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbershop-backend/config"
)

func TestAcceptable(t *testing.T) {
	thresholds := map[string]float64{
		"hate":     0.5,
		"violence": 0.7,
	}

	cases := []struct {
		name   string
		scores map[string]float64
		want   bool
	}{
		{"all below", map[string]float64{"hate": 0.1, "violence": 0.2}, true},
		{"one at threshold", map[string]float64{"hate": 0.5, "violence": 0.1}, false},
		{"one above", map[string]float64{"hate": 0.1, "violence": 0.9}, false},
		{"all above", map[string]float64{"hate": 0.9, "violence": 0.9}, false},
		{"unconfigured category ignored", map[string]float64{"pii": 0.99}, true},
		{"empty scores", map[string]float64{}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Acceptable(tc.scores, thresholds))
		})
	}
}

func TestMistralModeratorClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"category_scores":{"hate":0.12,"violence":0.03}}]}`))
	}))
	defer server.Close()

	moderator := NewMistralModerator(config.ModerationConfig{
		APIKey:   "test-key",
		Endpoint: server.URL,
		Model:    "mistral-moderation-latest",
	})

	scores, err := moderator.Classify(context.Background(), "обычный отзыв")
	require.NoError(t, err)
	assert.InDelta(t, 0.12, scores["hate"], 1e-9)
	assert.InDelta(t, 0.03, scores["violence"], 1e-9)
}

func TestMistralModeratorMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	moderator := NewMistralModerator(config.ModerationConfig{
		APIKey:   "test-key",
		Endpoint: server.URL,
	})

	_, err := moderator.Classify(context.Background(), "text")
	assert.Error(t, err)
}

func TestMistralModeratorHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	moderator := NewMistralModerator(config.ModerationConfig{
		APIKey:   "test-key",
		Endpoint: server.URL,
	})

	_, err := moderator.Classify(context.Background(), "text")
	assert.Error(t, err)
}
