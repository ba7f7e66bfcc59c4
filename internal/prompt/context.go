// Package prompt assembles the context snapshots and prompt strings sent to
// the generative service. Everything here is a pure function over store
// snapshots: no network, no mutation. Keeping assembly separate from the
// transport makes every request deterministic and testable offline.
package prompt

import (
	"fmt"
	"strings"

	"esgcopilot/internal/types"
)

// ChatContext is the minimal user-situation snapshot for a chat request.
type ChatContext struct {
	Page            string
	FocusedQuestion *types.Question
}

// BuildChatContext captures the current page and focused question, if any.
func BuildChatContext(page string, focused *types.Question) ChatContext {
	return ChatContext{Page: page, FocusedQuestion: focused}
}

// SystemPrompt renders the copilot persona plus the user's current context.
func (c ChatContext) SystemPrompt() string {
	focused := "None"
	description := ""
	if c.FocusedQuestion != nil {
		focused = fmt.Sprintf("%s: %s", c.FocusedQuestion.Topic, c.FocusedQuestion.Text)
		description = c.FocusedQuestion.Description
	}

	var b strings.Builder
	b.WriteString("You are an expert ESG Copilot for Small and Medium Enterprises (SMEs) in Vietnam/ASEAN.\n")
	b.WriteString("Your goal is to guide non-expert business owners through the VSME (Voluntary SME) reporting standard.\n\n")
	b.WriteString("Current User Context:\n")
	fmt.Fprintf(&b, "- Page: %s\n", c.Page)
	fmt.Fprintf(&b, "- Focused Question: %s\n", focused)
	fmt.Fprintf(&b, "- Description of Question: %s\n\n", description)
	b.WriteString("Tone: Professional, encouraging, simplified, and helpful. Avoid overly complex jargon.\n")
	b.WriteString("If the user asks about calculation, explain the formula simply (e.g., Activity Data x Emission Factor).\n")
	b.WriteString("If the user is stuck, suggest types of documents they might look for (e.g., electricity bills, payroll records).\n\n")
	b.WriteString("Keep responses concise unless asked for a detailed explanation.")
	return b.String()
}

// BuildUnfinishedTopics returns the de-duplicated, ordered topics of
// questions still not_started or in_progress. Plan generation is scoped to
// these so the model proposes actions for real gaps only.
func BuildUnfinishedTopics(questions []types.Question) []string {
	seen := map[string]bool{}
	var topics []string
	for _, q := range questions {
		if q.Status != types.StatusNotStarted && q.Status != types.StatusInProgress {
			continue
		}
		if seen[q.Topic] {
			continue
		}
		seen[q.Topic] = true
		topics = append(topics, q.Topic)
	}
	return topics
}

// SuggestionContext is the minimal input for a single-value suggestion.
type SuggestionContext struct {
	Topic        string
	QuestionText string
	Unit         string
	Size         types.CompanySize
	Industry     string
	Location     string
}

// BuildSuggestionContext extracts the fields needed to ask for a realistic
// value for one question, given the company profile.
func BuildSuggestionContext(q types.Question, profile types.CompanyProfile) SuggestionContext {
	return SuggestionContext{
		Topic:        q.Topic,
		QuestionText: q.Text,
		Unit:         q.Unit,
		Size:         profile.Size,
		Industry:     profile.Industry,
		Location:     profile.Location,
	}
}

// Prompt renders the suggestion request.
func (c SuggestionContext) Prompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest a realistic value for the following ESG reporting question, for a %s %s company located in %s.\n\n",
		strings.ToLower(string(c.Size)), c.Industry, c.Location)
	fmt.Fprintf(&b, "Topic: %s\nQuestion: %s\n", c.Topic, c.QuestionText)
	if c.Unit != "" {
		fmt.Fprintf(&b, "Unit: %s\n\n", c.Unit)
		b.WriteString("Answer with the number only, no unit and no explanation.")
	} else {
		b.WriteString("\nAnswer with a short phrase, no explanation.")
	}
	return b.String()
}

// ExtractionPrompt renders the document-extraction simulation request.
// The system never reads real file bytes; the model is asked to describe
// plausible facts for a document of that name and type.
func ExtractionPrompt(filename string, docType types.EvidenceType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Simulate a data extraction result for an uploaded file named %q of type %q.\n", filename, docType)
	b.WriteString("Assume this is for an SME's ESG report.\n\n")
	b.WriteString("If it looks like an electricity bill, extract kWh and Cost.\n")
	b.WriteString("If it looks like an HR report, extract Headcount and Gender Ratio.\n")
	b.WriteString("If it is a policy, summarize the key commitments.\n\n")
	b.WriteString(`Return a short paragraph summarizing the "extracted" facts.`)
	return b.String()
}

// PlanPrompt renders the structured action-plan generation request. The
// response shape itself is constrained separately via a response schema.
func PlanPrompt(profile types.CompanyProfile, unfinishedTopics []string) string {
	topics := "general ESG readiness"
	if len(unfinishedTopics) > 0 {
		topics = strings.Join(unfinishedTopics, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate an ESG action plan for %s, a %s %s company in %s (reporting year %d).\n\n",
		profile.Name, strings.ToLower(string(profile.Size)), profile.Industry, profile.Location, profile.ReportingYear)
	fmt.Fprintf(&b, "The following assessment topics still have gaps: %s.\n\n", topics)
	b.WriteString("Propose 3 to 5 concrete, practical initiatives an SME can execute. ")
	b.WriteString("Each item needs a short actionable title, an impact rating (High, Medium or Low), ")
	b.WriteString("an effort rating (Hard, Medium or Easy), and status Planned.")
	return b.String()
}
