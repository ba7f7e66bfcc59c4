// Package gemini is the single transport to the external generative
// service. Nothing else in the repository talks to the network. The request
// shape is fixed: a model identifier, prompt contents, and optionally either
// a system instruction or a response schema.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"esgcopilot/internal/logging"
)

// Request is one generation request.
type Request struct {
	// Contents is the user prompt (free text or a constructed prompt).
	Contents string
	// SystemInstruction, when non-empty, steers the model persona.
	SystemInstruction string
	// ResponseSchema, when set, forces a JSON response constrained to the
	// schema. The service may still deviate; callers must validate.
	ResponseSchema *genai.Schema
}

// Generator abstracts the service call so orchestration can be tested
// without a network.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Config holds the Gemini client configuration.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults for the given credential.
func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   "gemini-3-flash-preview",
		Timeout: 2 * time.Minute,
	}
}

// Client implements Generator against the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient creates a Gemini client. The credential is required; callers
// that have no key must not construct a client at all (the orchestrator
// treats a nil Generator as unconfigured mode).
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-3-flash-preview"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, model: model, timeout: timeout}, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.model
}

// Generate sends one request and returns the response text.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	// Apply the configured timeout when the context has no deadline.
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	logging.GeminiDebug("generate: model=%s prompt_len=%d system=%t schema=%t",
		c.model, len(req.Contents), req.SystemInstruction != "", req.ResponseSchema != nil)

	cfg := &genai.GenerateContentConfig{}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.ResponseSchema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = req.ResponseSchema
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Contents), cfg)
	if err != nil {
		logging.GeminiError("generate failed after %v: %v", time.Since(start), err)
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	logging.Gemini("generate completed in %v response_len=%d", time.Since(start), len(text))
	return text, nil
}
