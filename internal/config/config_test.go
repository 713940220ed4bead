package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func isolateConfig(t *testing.T) (globalPath, projectDir string) {
	t.Helper()
	dir := t.TempDir()
	globalPath = filepath.Join(dir, "global.yaml")
	projectDir = filepath.Join(dir, "project")
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MULTIREASONER_DEFAULT_CONFIG", filepath.Join(dir, "default.yaml"))
	t.Setenv("MULTIREASONER_GLOBAL_CONFIG", globalPath)
	t.Setenv("MULTIREASONER_CONFIG_DIR", dir)
	return globalPath, projectDir
}

func TestLoadConfigMergesLayers(t *testing.T) {
	globalPath, projectDir := isolateConfig(t)

	writeConfig(t, globalPath, "defaults:\n  depth: low\n  mode: bullets\n")
	writeConfig(t, filepath.Join(projectDir, ".multireasoner.yaml"), "defaults:\n  depth: high\n")

	if _, err := LoadConfig(projectDir); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if got, ok := GetConfig("defaults.depth"); !ok || got != "high" {
		t.Fatalf("defaults.depth = %q (%v), want project override", got, ok)
	}
	if got, ok := GetConfig("defaults.mode"); !ok || got != "bullets" {
		t.Fatalf("defaults.mode = %q (%v), want global value", got, ok)
	}
}

func TestGetConfigMissingKey(t *testing.T) {
	_, projectDir := isolateConfig(t)
	if _, err := LoadConfig(projectDir); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if _, ok := GetConfig("no.such.key"); ok {
		t.Fatal("missing key should not be found")
	}
	if _, ok := GetConfig(""); ok {
		t.Fatal("empty key should not be found")
	}
}

func TestDirectEnvOverrideWins(t *testing.T) {
	globalPath, projectDir := isolateConfig(t)
	writeConfig(t, globalPath, "defaults:\n  depth: low\n")

	if _, err := LoadConfig(projectDir); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	t.Setenv("MULTIREASONER_DEPTH", "medium")
	if got, ok := GetConfig("defaults.depth"); !ok || got != "medium" {
		t.Fatalf("defaults.depth = %q (%v), want env override", got, ok)
	}
}

func TestGetList(t *testing.T) {
	globalPath, projectDir := isolateConfig(t)
	writeConfig(t, globalPath, "extract:\n  answer_markers: \"codex, thinking , final\"\n")

	if _, err := LoadConfig(projectDir); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	got, ok := GetList("extract.answer_markers")
	if !ok {
		t.Fatal("expected marker list")
	}
	want := []string{"codex", "thinking", "final"}
	if len(got) != len(want) {
		t.Fatalf("GetList = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("GetList = %v, want %v", got, want)
		}
	}

	if _, ok := GetList("extract.missing"); ok {
		t.Fatal("missing list key should not be found")
	}
}

func TestSetConfigPersistsToGlobalFile(t *testing.T) {
	globalPath, projectDir := isolateConfig(t)

	if _, err := LoadConfig(projectDir); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if err := SetConfig("gemini.model", "gemini-2.5-pro"); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}

	if got, ok := GetConfig("gemini.model"); !ok || got != "gemini-2.5-pro" {
		t.Fatalf("gemini.model = %q (%v) after set", got, ok)
	}

	// A fresh load must see the persisted value.
	if _, err := LoadConfig(projectDir); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got, ok := GetConfig("gemini.model"); !ok || got != "gemini-2.5-pro" {
		t.Fatalf("gemini.model = %q (%v) after reload from %s", got, ok, globalPath)
	}
}

func TestSetConfigRejectsEmptyKey(t *testing.T) {
	isolateConfig(t)
	if err := SetConfig("", "value"); err == nil {
		t.Fatal("expected error for empty key")
	}
}

func TestListConfigFlattens(t *testing.T) {
	globalPath, projectDir := isolateConfig(t)
	writeConfig(t, globalPath, "defaults:\n  depth: high\ncodex:\n  binary: codex\n")

	if _, err := LoadConfig(projectDir); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	flat, err := ListConfig()
	if err != nil {
		t.Fatalf("ListConfig: %v", err)
	}
	if flat["defaults.depth"] != "high" || flat["codex.binary"] != "codex" {
		t.Fatalf("flattened config = %v", flat)
	}
}
