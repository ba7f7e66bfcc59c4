package ui

import (
	"strings"
	"testing"

	"esgcopilot/internal/types"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("ESGCOPILOT_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when ESGCOPILOT_DARK_MODE=1")
	}

	t.Setenv("ESGCOPILOT_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when ESGCOPILOT_DARK_MODE is unset")
	}
}

func TestCategoryColor(t *testing.T) {
	if CategoryColor(types.CategoryEnvironment) != Environment {
		t.Error("environment pillar should use the environment color")
	}
	if CategoryColor(types.CategorySocial) != Social {
		t.Error("social pillar should use the social color")
	}
	if CategoryColor(types.CategoryGovernance) != Governance {
		t.Error("governance pillar should use the governance color")
	}
}

func TestRenderProgressBar(t *testing.T) {
	s := NewStyles(LightTheme())

	full := s.RenderProgressBar(5, 5, 10)
	if !strings.Contains(full, strings.Repeat("█", 10)) {
		t.Errorf("full bar should be entirely filled: %q", full)
	}

	empty := s.RenderProgressBar(0, 5, 10)
	if strings.Contains(empty, "█") {
		t.Errorf("empty bar should have no filled cells: %q", empty)
	}

	// Zero total must not panic or divide by zero.
	if got := s.RenderProgressBar(0, 0, 10); !strings.Contains(got, strings.Repeat("░", 10)) {
		t.Errorf("zero-total bar should be empty: %q", got)
	}
}
