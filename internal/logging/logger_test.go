package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDisabledLoggingWritesNothing(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, false, nil); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer Shutdown()

	Store("mutation id=%s", "E1")
	Copilot("request kind=%s", "chat")

	if _, err := os.Stat(filepath.Join(dir, ".esgcopilot", "logs")); !os.IsNotExist(err) {
		t.Fatalf("expected no logs directory in production mode")
	}
}

func TestEnabledLoggingWritesCategoryFile(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, true, nil); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer Shutdown()

	Copilot("plan generated items=%d", 4)
	Shutdown()

	data, err := os.ReadFile(filepath.Join(dir, ".esgcopilot", "logs", "copilot.log"))
	if err != nil {
		t.Fatalf("expected copilot.log: %v", err)
	}
	if !strings.Contains(string(data), "plan generated items=4") {
		t.Fatalf("log entry missing, got: %s", data)
	}
}

func TestCategoryFilter(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, true, map[string]bool{"store": false}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer Shutdown()

	Store("should be filtered")
	Gemini("should be written")
	Shutdown()

	if _, err := os.Stat(filepath.Join(dir, ".esgcopilot", "logs", "store.log")); !os.IsNotExist(err) {
		t.Fatalf("store category should be filtered out")
	}
	if _, err := os.Stat(filepath.Join(dir, ".esgcopilot", "logs", "gemini.log")); err != nil {
		t.Fatalf("gemini category should be written: %v", err)
	}
}
