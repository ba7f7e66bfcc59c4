package copilot

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"esgcopilot/internal/gemini"
	"esgcopilot/internal/logging"
	"esgcopilot/internal/prompt"
	"esgcopilot/internal/types"
)

// planItem is the wire shape of one generated action. Fields are validated
// against their closed enumerations before anything reaches the caller.
type planItem struct {
	Title  string `json:"title"`
	Impact string `json:"impact"`
	Effort string `json:"effort"`
	Status string `json:"status"`
}

// planResponseSchema constrains the structured response: an array of 3-5
// objects whose impact/effort/status fields are closed string enums, all
// four fields required.
func planResponseSchema() *genai.Schema {
	return &genai.Schema{
		Type:     genai.TypeArray,
		MinItems: genai.Ptr(int64(3)),
		MaxItems: genai.Ptr(int64(5)),
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title": {Type: genai.TypeString},
				"impact": {
					Type: genai.TypeString,
					Enum: []string{string(types.ImpactHigh), string(types.ImpactMedium), string(types.ImpactLow)},
				},
				"effort": {
					Type: genai.TypeString,
					Enum: []string{string(types.EffortHard), string(types.EffortMedium), string(types.EffortEasy)},
				},
				"status": {
					Type: genai.TypeString,
					Enum: []string{string(types.ActionPlanned), string(types.ActionInProgress), string(types.ActionDone)},
				},
			},
			Required: []string{"title", "impact", "effort", "status"},
		},
	}
}

// MockPlan returns the fixed two-item plan used in unconfigured mode.
func MockPlan() []types.ActionPlanItem {
	return []types.ActionPlanItem{
		{ID: "mock1", Title: "Conduct an Energy Audit", Impact: types.ImpactHigh, Effort: types.EffortMedium, Status: types.ActionPlanned},
		{ID: "mock2", Title: "Draft an Environmental Policy", Impact: types.ImpactMedium, Effort: types.EffortEasy, Status: types.ActionPlanned},
	}
}

// GenerateActionPlan asks the service for 3-5 remediation items scoped to
// the unfinished topics. Every returned item carries a freshly generated id
// so it can never collide with ids already in the store. A malformed or
// protocol-violating response yields an empty list, never a partial one.
func (c *Copilot) GenerateActionPlan(ctx context.Context, profile types.CompanyProfile, unfinishedTopics []string) []types.ActionPlanItem {
	if c.gen == nil {
		logging.Copilot("plan: unconfigured, returning mock items")
		return MockPlan()
	}

	text, err := c.gen.Generate(ctx, gemini.Request{
		Contents:       prompt.PlanPrompt(profile, unfinishedTopics),
		ResponseSchema: planResponseSchema(),
	})
	if err != nil {
		logging.CopilotError("plan request failed: %v", err)
		return nil
	}

	items, ok := parsePlan(text)
	if !ok {
		logging.CopilotWarn("plan response rejected (len=%d)", len(text))
		return nil
	}
	logging.Copilot("plan generated items=%d", len(items))
	return items
}

// parsePlan validates the structured response end to end. The whole list is
// rejected on the first violation; partial results are never returned.
func parsePlan(text string) ([]types.ActionPlanItem, bool) {
	raw := extractJSONArray(text)
	if raw == "" {
		return nil, false
	}

	var wire []planItem
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, false
	}

	items := make([]types.ActionPlanItem, 0, len(wire))
	for _, w := range wire {
		item := types.ActionPlanItem{
			ID:     "ai-" + uuid.NewString(),
			Title:  strings.TrimSpace(w.Title),
			Impact: types.Impact(w.Impact),
			Effort: types.Effort(w.Effort),
			Status: types.ActionStatus(w.Status),
		}
		if item.Title == "" || !item.Impact.Valid() || !item.Effort.Valid() || !item.Status.Valid() {
			return nil, false
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// extractJSONArray pulls the first balanced JSON array out of text,
// tolerating surrounding prose or a markdown code fence.
func extractJSONArray(s string) string {
	start := strings.Index(s, "[")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
