// Package generator adapts the generative-text provider behind the
// NameGenerator capability the orchestrator consumes.
package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/tastefolio/personalization-service/internal/domain"
)

// NameGenerator produces raw candidate-name text for a prompt. A failed
// or empty response is never fatal to a request; callers fall back to
// cached or seeded results.
type NameGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Gemini calls the Generative Language REST API, trying each configured
// model in order and returning the first non-empty completion. Repeated
// failures open a circuit breaker so a dead upstream degrades to the
// fallback chain without burning the per-request timeout every time.
type Gemini struct {
	apiKey  string
	models  []string
	baseURL string
	client  *http.Client
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[string]
	log     *zap.Logger
}

func NewGemini(apiKey string, models []string, timeout time.Duration, log *zap.Logger) *Gemini {
	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "gemini",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &Gemini{
		apiKey:  apiKey,
		models:  models,
		baseURL: defaultBaseURL,
		client:  &http.Client{},
		timeout: timeout,
		breaker: breaker,
		log:     log,
	}
}

// WithBaseURL overrides the API endpoint; used by tests.
func (g *Gemini) WithBaseURL(u string) *Gemini {
	g.baseURL = strings.TrimRight(u, "/")
	return g
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", domain.ErrGeneratorUnavailable
	}

	text, err := g.breaker.Execute(func() (string, error) {
		return g.generate(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("%w: circuit open", domain.ErrGeneratorUnavailable)
		}
		return "", err
	}
	return text, nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for _, model := range g.models {
		text, err := g.callModel(ctx, model, prompt)
		if err != nil {
			g.log.Warn("gemini model failed", zap.String("model", model), zap.Error(err))
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, lastErr)
	}
	return "", fmt.Errorf("%w: all models returned empty output", domain.ErrGeneratorUnavailable)
}

type generateRequest struct {
	Contents []content `json:"contents"`
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

func (g *Gemini) callModel(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call model %s: %w", model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("model %s: status %d: %s", model, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
