package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"esgcopilot/internal/types"
)

func TestChatContextWithFocusedQuestion(t *testing.T) {
	q := types.Question{Topic: "Energy", Text: "Total Electricity Consumption", Description: "Enter total kWh."}
	ctx := BuildChatContext("Assessment", &q)

	sys := ctx.SystemPrompt()
	assert.Contains(t, sys, "- Page: Assessment")
	assert.Contains(t, sys, "- Focused Question: Energy: Total Electricity Consumption")
	assert.Contains(t, sys, "Enter total kWh.")
	assert.Contains(t, sys, "VSME")
}

func TestChatContextWithoutQuestion(t *testing.T) {
	sys := BuildChatContext("Dashboard", nil).SystemPrompt()
	assert.Contains(t, sys, "- Focused Question: None")
}

func TestBuildUnfinishedTopicsDeduplicatesInOrder(t *testing.T) {
	questions := []types.Question{
		{Topic: "Energy", Status: types.StatusNotStarted},
		{Topic: "Water", Status: types.StatusInProgress},
		{Topic: "Energy", Status: types.StatusInProgress},
		{Topic: "Workforce", Status: types.StatusCompleted},
		{Topic: "Ethics", Status: types.StatusVerified},
		{Topic: "Waste", Status: types.StatusNotStarted},
	}

	got := BuildUnfinishedTopics(questions)
	assert.Equal(t, []string{"Energy", "Water", "Waste"}, got)
}

func TestBuildUnfinishedTopicsEmpty(t *testing.T) {
	assert.Empty(t, BuildUnfinishedTopics(nil))
	assert.Empty(t, BuildUnfinishedTopics([]types.Question{{Topic: "Energy", Status: types.StatusCompleted}}))
}

func TestSuggestionPromptNumeric(t *testing.T) {
	c := BuildSuggestionContext(
		types.Question{Topic: "Energy", Text: "Total Electricity Consumption", Unit: "kWh"},
		types.SeedCompany(),
	)

	assert.Equal(t, "kWh", c.Unit)
	assert.Equal(t, types.SizeMedium, c.Size)

	p := c.Prompt()
	assert.Contains(t, p, "medium Manufacturing company located in Ho Chi Minh City, Vietnam")
	assert.Contains(t, p, "Unit: kWh")
	assert.Contains(t, p, "number only")
}

func TestSuggestionPromptText(t *testing.T) {
	c := BuildSuggestionContext(
		types.Question{Topic: "Ethics", Text: "Code of Conduct"},
		types.SeedCompany(),
	)
	p := c.Prompt()
	assert.Contains(t, p, "short phrase")
	assert.NotContains(t, p, "Unit:")
}

func TestExtractionPrompt(t *testing.T) {
	p := ExtractionPrompt("May_Electricity.pdf", types.EvidenceInvoice)
	assert.Contains(t, p, `"May_Electricity.pdf"`)
	assert.Contains(t, p, `"Invoice"`)
	assert.Contains(t, p, "Simulate")
}

func TestPlanPrompt(t *testing.T) {
	p := PlanPrompt(types.SeedCompany(), []string{"Energy", "GHG Emissions"})
	assert.Contains(t, p, "Viet Manufacturing Co., Ltd")
	assert.Contains(t, p, "Energy, GHG Emissions")
	assert.Contains(t, p, "3 to 5")

	empty := PlanPrompt(types.SeedCompany(), nil)
	assert.Contains(t, empty, "general ESG readiness")
	assert.False(t, strings.Contains(empty, "gaps: ."))
}
