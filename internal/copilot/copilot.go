// Package copilot orchestrates the four AI request kinds: open-ended chat,
// single-value suggestion, document-extraction simulation, and structured
// action-plan generation. Every failure is absorbed at this boundary and
// converted into a documented fallback value; callers never receive an
// error. The orchestrator is stateless per call, owns no entities, and only
// reads the snapshots handed to it.
package copilot

import (
	"context"
	"math/rand"
	"strings"

	"esgcopilot/internal/gemini"
	"esgcopilot/internal/logging"
	"esgcopilot/internal/prompt"
	"esgcopilot/internal/types"
)

// Fallback payloads. The unconfigured strings double as gentle setup
// instructions; the failure strings are apologetic but final (no retries).
const (
	ChatFallbackUnconfigured = "I'm ready to help, but I need an API Key to function. Please ensure the environment is configured."
	ChatFallbackFailure      = "I'm having trouble connecting to my knowledge base right now. Please try again later."
	chatFallbackEmpty        = "I processed that but couldn't generate a text response."

	SuggestionMock = "1000 (Mock Suggestion)"

	ExtractionMockText    = "Mock extraction: API Key missing."
	ExtractionFailureText = "Error extracting data from document."
)

// Copilot issues requests against a Generator. A nil Generator means the
// service is unconfigured: every operation short-circuits to its static
// fallback without a network attempt.
type Copilot struct {
	gen gemini.Generator
}

// New creates an orchestrator. gen may be nil (unconfigured mode).
func New(gen gemini.Generator) *Copilot {
	return &Copilot{gen: gen}
}

// Configured reports whether a service credential is present.
func (c *Copilot) Configured() bool {
	return c.gen != nil
}

// ChatResponse answers a free-text user message within the given context.
// The result is always a display-ready string.
func (c *Copilot) ChatResponse(ctx context.Context, userMessage string, chatCtx prompt.ChatContext) string {
	if c.gen == nil {
		logging.Copilot("chat: unconfigured, returning static fallback")
		return ChatFallbackUnconfigured
	}

	text, err := c.gen.Generate(ctx, gemini.Request{
		Contents:          userMessage,
		SystemInstruction: chatCtx.SystemPrompt(),
	})
	if err != nil {
		logging.CopilotError("chat request failed: %v", err)
		return ChatFallbackFailure
	}
	if text == "" {
		return chatFallbackEmpty
	}
	return text
}

// SuggestValue proposes a single value for a question: a number rendered as
// text for unit-bearing questions, a short phrase otherwise. An empty
// result means "no suggestion available" and must not be written to the
// question.
func (c *Copilot) SuggestValue(ctx context.Context, q types.Question, profile types.CompanyProfile) string {
	if c.gen == nil {
		logging.Copilot("suggestion: unconfigured, returning mock value")
		return SuggestionMock
	}

	text, err := c.gen.Generate(ctx, gemini.Request{
		Contents: prompt.BuildSuggestionContext(q, profile).Prompt(),
	})
	if err != nil {
		logging.CopilotError("suggestion request failed for %s: %v", q.ID, err)
		return ""
	}
	return strings.TrimSpace(text)
}

// Extraction is the result of a document-extraction simulation.
type Extraction struct {
	Text       string
	Confidence float64
}

// ExtractDocument simulates extracting facts from an uploaded document. No
// file bytes are ever read; the model describes plausible facts for a
// document of that name and type. Successful extractions carry a confidence
// in a fixed realistic band.
func (c *Copilot) ExtractDocument(ctx context.Context, filename string, docType types.EvidenceType) Extraction {
	if c.gen == nil {
		logging.Copilot("extraction: unconfigured, returning placeholder")
		return Extraction{Text: ExtractionMockText, Confidence: 0}
	}

	text, err := c.gen.Generate(ctx, gemini.Request{
		Contents: prompt.ExtractionPrompt(filename, docType),
	})
	if err != nil {
		logging.CopilotError("extraction request failed for %q: %v", filename, err)
		return Extraction{Text: ExtractionFailureText, Confidence: 0}
	}
	if text == "" {
		text = "Could not extract data."
	}

	return Extraction{
		Text:       text,
		Confidence: 0.85 + rand.Float64()*0.1,
	}
}
