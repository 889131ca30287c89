// Package insight produces a short advisory blurb from recent sales by
// calling an external generative-text API. The call is strictly best
// effort: it is time-bounded, sits off the critical path of billing, and
// every failure mode degrades to a fixed fallback string instead of an
// error.
package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sweettreats/bakery-pos/internal/config"
	"github.com/sweettreats/bakery-pos/internal/models"
)

const (
	// FallbackNoSales is returned when there is no sales history to analyze.
	FallbackNoSales = "Start selling to see AI insights!"
	// FallbackUnavailable is returned on any upstream failure.
	FallbackUnavailable = "Could not load AI insights."

	systemInstruction = "You are a bakery business consultant. Be concise and professional."
	promptPrefix      = "Analyze these recent sales for a cake shop and provide 3 short, actionable business tips (max 10 words each) based on trends: "

	// maxBills caps how much history is sent upstream.
	maxBills = 50
)

// billSummary is the reduced view of a bill sent to the API
type billSummary struct {
	Date  time.Time       `json:"date"`
	Total decimal.Decimal `json:"total"`
	Items []string        `json:"items"`
}

// request/response shapes for the generateContent endpoint

type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Generator calls the configured generative-text API
type Generator struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *http.Client
	log     *slog.Logger
}

// NewGenerator creates a generator from config. With an empty API key the
// generator never calls out and always answers with FallbackUnavailable.
func NewGenerator(cfg config.InsightConfig, log *slog.Logger) *Generator {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &Generator{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// BusinessInsight returns a short natural-language tip derived from the
// most recent bills. It never returns an error; callers always get usable
// text.
func (g *Generator) BusinessInsight(ctx context.Context, bills []models.Bill) string {
	if len(bills) == 0 {
		return FallbackNoSales
	}
	if g.apiKey == "" {
		return FallbackUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.generate(ctx, bills)
	if err != nil {
		g.log.Warn("insight generation failed", "error", err)
		return FallbackUnavailable
	}
	return text
}

func (g *Generator) generate(ctx context.Context, bills []models.Bill) (string, error) {
	if len(bills) > maxBills {
		bills = bills[:maxBills]
	}

	summaries := make([]billSummary, 0, len(bills))
	for _, bill := range bills {
		names := make([]string, 0, len(bill.Items))
		for _, item := range bill.Items {
			names = append(names, item.Name)
		}
		summaries = append(summaries, billSummary{
			Date:  bill.Date,
			Total: bill.Total,
			Items: names,
		})
	}

	summaryJSON, err := json.Marshal(summaries)
	if err != nil {
		return "", fmt.Errorf("failed to serialize sales summary: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{
			{Parts: []part{{Text: promptPrefix + string(summaryJSON)}}},
		},
		SystemInstruction: &content{
			Parts: []part{{Text: systemInstruction}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty response text")
	}
	return text, nil
}
