package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"esgcopilot/internal/copilot"
)

func TestNewAppOffline(t *testing.T) {
	logger = zap.NewNop()
	workspace = t.TempDir()
	t.Setenv("GEMINI_API_KEY", "")

	a, err := newApp(context.Background())
	if err != nil {
		t.Fatalf("newApp returned error: %v", err)
	}
	if a.copilot.Configured() {
		t.Fatal("expected unconfigured copilot without a key")
	}
	if got := len(a.store.Questions()); got != 5 {
		t.Fatalf("expected the 5 seed questions, got %d", got)
	}
}

func TestShowStatus(t *testing.T) {
	logger = zap.NewNop()
	workspace = t.TempDir()
	t.Setenv("GEMINI_API_KEY", "")

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	output := captureOutput(t, func() {
		if err := showStatus(cmd, nil); err != nil {
			t.Fatalf("showStatus returned error: %v", err)
		}
	})

	if !strings.Contains(output, "Copilot") {
		t.Fatalf("expected the banner in status output: %s", output)
	}
	if !strings.Contains(output, "60%") {
		t.Fatalf("seed data is 3/5 answered, expected 60%% in output: %s", output)
	}
	if !strings.Contains(output, "offline mode") {
		t.Fatalf("expected offline mode notice, got: %s", output)
	}
}

func TestSuggestAllSkipsInflightQuestions(t *testing.T) {
	a := testApp()
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())

	// E1 is the only seed question without an answer. With its suggestion
	// marker already held, the fan-out must not issue a request for it.
	a.inflight.Begin(copilot.KindSuggestion, "E1")
	output := captureOutput(t, func() {
		if err := suggestAllQuestions(cmd, a); err != nil {
			t.Fatalf("suggestAllQuestions returned error: %v", err)
		}
	})
	if !strings.Contains(output, "no suggestion") {
		t.Fatalf("skipped question should report no suggestion, got: %s", output)
	}
	if q, _ := a.store.Question("E1"); q.AISuggestion != "" {
		t.Fatalf("in-flight question must not receive a suggestion, got %q", q.AISuggestion)
	}

	// Once the marker clears, the same question is served.
	a.inflight.End(copilot.KindSuggestion, "E1")
	captureOutput(t, func() {
		if err := suggestAllQuestions(cmd, a); err != nil {
			t.Fatalf("suggestAllQuestions returned error: %v", err)
		}
	})
	if q, _ := a.store.Question("E1"); q.AISuggestion != copilot.SuggestionMock {
		t.Fatalf("expected stored mock suggestion after marker cleared, got %q", q.AISuggestion)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected unchanged string, got %q", got)
	}
	if got := truncate("a very long question text", 10); got != "a very lo…" {
		t.Fatalf("unexpected truncation: %q", got)
	}
}

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origOut := os.Stdout
	origErr := os.Stderr
	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, rOut)
		_, _ = io.Copy(&buf, rErr)
		done <- buf.String()
	}()

	fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = origOut
	os.Stderr = origErr
	return <-done
}
