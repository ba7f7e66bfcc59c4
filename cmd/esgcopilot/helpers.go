package main

import (
	"sync"

	"esgcopilot/cmd/esgcopilot/ui"
)

var (
	stylesOnce sync.Once
	styles     ui.Styles
)

// currentStyles returns the process-wide style set, detected once.
func currentStyles() ui.Styles {
	stylesOnce.Do(func() {
		styles = ui.DefaultStyles()
	})
	return styles
}

// truncate shortens s to max runes with an ellipsis for table cells.
func truncate(s string, max int) string {
	if max <= 1 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
