package prompt

import (
	"strings"
	"testing"
)

func TestBuildContainsAllSegmentsInOrder(t *testing.T) {
	got := Build("Should we rewrite it?", "memo", nil, nil)

	segments := []string{
		"You are a reasoning assistant",
		"OUTPUT FORMAT - Structure your response as a memo:",
		"\n\n---\n\nUSER INPUT:\nShould we rewrite it?",
	}
	pos := 0
	for _, seg := range segments {
		idx := strings.Index(got[pos:], seg)
		if idx < 0 {
			t.Fatalf("prompt missing segment %q:\n%s", seg, got)
		}
		pos += idx + len(seg)
	}
	if strings.Contains(got, "ATTACHED FILES") {
		t.Fatal("no file section expected without attachments")
	}
	if strings.Contains(got, "could not be read") {
		t.Fatal("no error note expected without file errors")
	}
}

func TestBuildModeSelection(t *testing.T) {
	cases := []struct {
		mode string
		want string
	}{
		{"memo", "OUTPUT FORMAT - Structure your response as a memo:"},
		{"bullets", "OUTPUT FORMAT - Bullet points only:"},
		{"questions", "OUTPUT FORMAT - Questions only:"},
		{"quick", "OUTPUT FORMAT - Quick response:"},
		{"", "OUTPUT FORMAT - Structure your response as a memo:"},
		{"sonnet", "OUTPUT FORMAT - Structure your response as a memo:"},
	}
	for _, tc := range cases {
		got := Build("input", tc.mode, nil, nil)
		if !strings.Contains(got, tc.want) {
			t.Fatalf("mode %q: prompt missing %q", tc.mode, tc.want)
		}
	}
}

func TestBuildWithFilesAndErrors(t *testing.T) {
	blocks := []string{
		"=== FILE: a.go ===\npackage a\n=== END FILE ===",
		"=== FILE: b.go ===\npackage b\n=== END FILE ===",
	}
	errs := []string{"File not found: missing.go", "Permission denied: locked.go"}

	got := Build("input", "quick", blocks, errs)

	wantFiles := "\n\n--- ATTACHED FILES ---\n" + blocks[0] + "\n\n" + blocks[1] + "\n--- END ATTACHED FILES ---"
	if !strings.Contains(got, wantFiles) {
		t.Fatalf("prompt missing file section:\n%s", got)
	}
	wantNote := "\n\n(Note: Some files could not be read: File not found: missing.go; Permission denied: locked.go)"
	if !strings.HasSuffix(got, wantNote) {
		t.Fatalf("prompt missing trailing error note:\n%s", got)
	}
}

func TestModes(t *testing.T) {
	modes := Modes()
	if len(modes) != 4 {
		t.Fatalf("Modes() = %v", modes)
	}
	for _, m := range modes {
		if _, ok := outputFormats[m]; !ok {
			t.Fatalf("mode %q has no output format", m)
		}
	}
	if DefaultMode != "memo" {
		t.Fatalf("DefaultMode = %q", DefaultMode)
	}
}
