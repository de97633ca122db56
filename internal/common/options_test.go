package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	options := DefaultOptions()

	if len(options.Locations) != 5 {
		t.Errorf("Expected 5 locations, got %d", len(options.Locations))
	}
	if len(options.EventTypes) != 4 {
		t.Errorf("Expected 4 event types, got %d", len(options.EventTypes))
	}
	if len(options.Durations) != 5 {
		t.Errorf("Expected 5 durations, got %d", len(options.Durations))
	}

	if !options.HasLocation("mumbai") {
		t.Error("Expected mumbai in default locations")
	}
	if options.HasLocation("atlantis") {
		t.Error("Did not expect atlantis in default locations")
	}
	if !options.HasEventType("drought") {
		t.Error("Expected drought in default event types")
	}
	if options.HasEventType("earthquake") {
		t.Error("Did not expect earthquake in default event types")
	}
	if !options.HasDuration(90) {
		t.Error("Expected 90 days in default durations")
	}
	if options.HasDuration(45) {
		t.Error("Did not expect 45 days in default durations")
	}
}

func TestLoadOptions_EmptyPathUsesDefaults(t *testing.T) {
	options, err := LoadOptions("")
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if len(options.Locations) != 5 {
		t.Errorf("Expected default locations, got %d", len(options.Locations))
	}
}

func TestLoadOptions_FromFile(t *testing.T) {
	content := `locations:
  - id: reykjavik
    name: Reykjavik, Iceland
eventTypes:
  - id: storm
    name: Storm
durations:
  - days: 14
    name: 14 Days
`
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write options file: %v", err)
	}

	options, err := LoadOptions(path)
	if err != nil {
		t.Fatalf("LoadOptions failed: %v", err)
	}
	if !options.HasLocation("reykjavik") {
		t.Error("Expected reykjavik from options file")
	}
	if options.HasLocation("mumbai") {
		t.Error("Expected file to replace the defaults entirely")
	}
	if !options.HasDuration(14) {
		t.Error("Expected 14-day duration from options file")
	}
}

func TestLoadOptions_Invalid(t *testing.T) {
	dir := t.TempDir()

	missingId := filepath.Join(dir, "missing-id.yaml")
	if err := os.WriteFile(missingId, []byte("locations:\n  - name: Nowhere\n"), 0644); err != nil {
		t.Fatalf("Failed to write options file: %v", err)
	}
	if _, err := LoadOptions(missingId); err == nil {
		t.Error("Expected error for location without id")
	}

	badDuration := filepath.Join(dir, "bad-duration.yaml")
	if err := os.WriteFile(badDuration, []byte("durations:\n  - days: 0\n    name: Zero\n"), 0644); err != nil {
		t.Fatalf("Failed to write options file: %v", err)
	}
	if _, err := LoadOptions(badDuration); err == nil {
		t.Error("Expected error for non-positive duration")
	}

	if _, err := LoadOptions(filepath.Join(dir, "does-not-exist.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
