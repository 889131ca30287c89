package insight

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sweettreats/bakery-pos/internal/config"
	"github.com/sweettreats/bakery-pos/internal/models"
	"github.com/sweettreats/bakery-pos/pkg/logger"
)

func sampleBills(n int) []models.Bill {
	bills := make([]models.Bill, 0, n)
	for i := 0; i < n; i++ {
		bills = append(bills, models.Bill{
			ID:           "bill",
			CustomerName: "Asha",
			Date:         time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
			Items: []models.BillItem{
				{ID: "3-", Name: "Vanilla Cupcake", Price: decimal.NewFromInt(45), Quantity: 2},
			},
			Total: decimal.NewFromInt(90),
		})
	}
	return bills
}

func newTestGenerator(baseURL string) *Generator {
	return NewGenerator(config.InsightConfig{
		APIKey:         "test-key",
		Model:          "test-model",
		BaseURL:        baseURL,
		TimeoutSeconds: 2,
	}, logger.New("error"))
}

func candidateResponse(text string) string {
	return `{"candidates":[{"content":{"parts":[{"text":"` + text + `"}]}}]}`
}

func TestBusinessInsight_EmptyBills(t *testing.T) {
	gen := newTestGenerator("http://unreachable.invalid")

	got := gen.BusinessInsight(context.Background(), nil)
	if got != FallbackNoSales {
		t.Errorf("insight = %q, want %q", got, FallbackNoSales)
	}
}

func TestBusinessInsight_MissingAPIKey(t *testing.T) {
	gen := NewGenerator(config.InsightConfig{
		Model:          "test-model",
		BaseURL:        "http://unreachable.invalid",
		TimeoutSeconds: 2,
	}, logger.New("error"))

	got := gen.BusinessInsight(context.Background(), sampleBills(1))
	if got != FallbackUnavailable {
		t.Errorf("insight = %q, want %q", got, FallbackUnavailable)
	}
}

func TestBusinessInsight_Success(t *testing.T) {
	var gotPath string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(candidateResponse("Promote cupcakes on weekends.")))
	}))
	defer srv.Close()

	gen := newTestGenerator(srv.URL)

	got := gen.BusinessInsight(context.Background(), sampleBills(2))
	if got != "Promote cupcakes on weekends." {
		t.Errorf("insight = %q", got)
	}

	if gotPath != "/v1beta/models/test-model:generateContent" {
		t.Errorf("path = %s", gotPath)
	}

	// The prompt carries the reduced sales summary
	var req generateRequest
	if err := json.Unmarshal(gotBody, &req); err != nil {
		t.Fatalf("failed to decode upstream request: %v", err)
	}
	if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
		t.Fatalf("unexpected request shape: %+v", req)
	}
	prompt := req.Contents[0].Parts[0].Text
	if !strings.Contains(prompt, "Vanilla Cupcake") {
		t.Errorf("prompt missing item names: %s", prompt)
	}
	if req.SystemInstruction == nil || len(req.SystemInstruction.Parts) == 0 {
		t.Error("system instruction not set")
	}
}

func TestBusinessInsight_CapsHistoryAtFifty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req generateRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("failed to decode upstream request: %v", err)
		}
		prompt := req.Contents[0].Parts[0].Text
		summaryJSON := strings.TrimPrefix(prompt, promptPrefix)

		var summaries []billSummary
		if err := json.Unmarshal([]byte(summaryJSON), &summaries); err != nil {
			t.Errorf("failed to decode summary: %v", err)
		}
		if len(summaries) != maxBills {
			t.Errorf("summary length = %d, want %d", len(summaries), maxBills)
		}

		_, _ = w.Write([]byte(candidateResponse("ok")))
	}))
	defer srv.Close()

	gen := newTestGenerator(srv.URL)
	gen.BusinessInsight(context.Background(), sampleBills(80))
}

func TestBusinessInsight_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"candidates":[]}`))
			},
		},
		{
			name: "empty text",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(candidateResponse("")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			gen := newTestGenerator(srv.URL)
			got := gen.BusinessInsight(context.Background(), sampleBills(1))
			if got != FallbackUnavailable {
				t.Errorf("insight = %q, want %q", got, FallbackUnavailable)
			}
		})
	}
}

func TestBusinessInsight_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server notices the client disconnect;
		// with unread body bytes pending it never cancels r.Context().
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	gen := NewGenerator(config.InsightConfig{
		APIKey:         "test-key",
		Model:          "test-model",
		BaseURL:        srv.URL,
		TimeoutSeconds: 1,
	}, logger.New("error"))

	start := time.Now()
	got := gen.BusinessInsight(context.Background(), sampleBills(1))
	if got != FallbackUnavailable {
		t.Errorf("insight = %q, want %q", got, FallbackUnavailable)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("call was not bounded by the configured timeout")
	}
}

func TestBusinessInsight_UnreachableHost(t *testing.T) {
	gen := newTestGenerator("http://127.0.0.1:1")

	got := gen.BusinessInsight(context.Background(), sampleBills(1))
	if got != FallbackUnavailable {
		t.Errorf("insight = %q, want %q", got, FallbackUnavailable)
	}
}
