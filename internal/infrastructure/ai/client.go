// Package ai wraps the external completion gateway that produces crop
// recommendations. The wrapper is deliberately thin: it builds a prompt,
// extracts the JSON document from the completion, and leaves all
// fallback behavior to the caller.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/agriconnect/marketplace-api/internal/core/ports"
)

// ErrNotConfigured is returned when no gateway URL was supplied.
var ErrNotConfigured = errors.New("recommendation gateway not configured")

// Client calls a completion gateway over HTTP.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
	model      string
}

// NewClient builds a gateway client. An empty url yields a client whose
// Generate always fails with ErrNotConfigured, pushing the service to its
// demo plan.
func NewClient(url, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		url:        url,
		apiKey:     apiKey,
		model:      model,
	}
}

type completionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// Generate asks the gateway for a recommendation plan.
func (c *Client) Generate(ctx context.Context, input ports.AnalyzeInput) (*ports.RecommendationPlan, error) {
	if c.url == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(completionRequest{
		Model:  c.model,
		Prompt: buildPrompt(input),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("gateway response: %w", err)
	}

	var completion completionResponse
	if err := json.Unmarshal(data, &completion); err != nil {
		return nil, fmt.Errorf("decode gateway envelope: %w", err)
	}

	return parsePlan(completion.Text)
}

func buildPrompt(input ports.AnalyzeInput) string {
	var b strings.Builder
	b.WriteString("You are an agricultural advisor. Given the field conditions below, ")
	b.WriteString("recommend crops as a JSON object with keys: recommendations (array of ")
	b.WriteString("{crop, suitability, reasoning, best_planting_season, expected_yield, ")
	b.WriteString("sustainability_notes}), rotation_schedule (array of {season, crops, benefits}), ")
	b.WriteString("sustainability_score (0-100), sustainability_notes. Respond with JSON only.\n")
	fmt.Fprintf(&b, "Soil type: %s\nLocation: %s\n", input.SoilType, input.Location)
	if input.PreviousCrops != "" {
		fmt.Fprintf(&b, "Previous crops: %s\n", input.PreviousCrops)
	}
	return b.String()
}

// fenceRe matches a ```json ... ``` block; completions often wrap their
// JSON in one despite being asked not to.
var fenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// parsePlan extracts the JSON document from the completion text and
// decodes it.
func parsePlan(text string) (*ports.RecommendationPlan, error) {
	raw := strings.TrimSpace(text)
	if m := fenceRe.FindStringSubmatch(raw); m != nil {
		raw = m[1]
	} else if start := strings.Index(raw, "{"); start > 0 {
		if end := strings.LastIndex(raw, "}"); end > start {
			raw = raw[start : end+1]
		}
	}

	var plan ports.RecommendationPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("decode recommendation plan: %w", err)
	}
	if len(plan.Recommendations) == 0 {
		return nil, errors.New("recommendation plan has no recommendations")
	}
	return &plan, nil
}

var _ ports.Recommender = (*Client)(nil)
