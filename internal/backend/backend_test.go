package backend_test

import (
	"reflect"
	"testing"

	"multireasoner/internal/backend"
	_ "multireasoner/internal/backend/codex"
	_ "multireasoner/internal/backend/gemini"
)

func TestRegistryContainsStandardBackends(t *testing.T) {
	names := backend.Names()
	want := []string{"chatgpt", "gemini"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
}

func TestGetIsCaseInsensitive(t *testing.T) {
	for _, name := range []string{"chatgpt", "ChatGPT", "  gemini  "} {
		if _, ok := backend.Get(name); !ok {
			t.Fatalf("Get(%q) not found", name)
		}
	}
	if _, ok := backend.Get("claude"); ok {
		t.Fatal("Get(claude) should not be found")
	}
	if _, ok := backend.Get(""); ok {
		t.Fatal("Get of empty name should not be found")
	}
}

func TestRegisterRejectsDuplicatesAndInvalid(t *testing.T) {
	if err := backend.Register("", nil); err != backend.ErrBackendInvalid {
		t.Fatalf("expected ErrBackendInvalid, got %v", err)
	}

	b, _ := backend.Get("chatgpt")
	if err := backend.Register("chatgpt", b); err != backend.ErrBackendRegistered {
		t.Fatalf("expected ErrBackendRegistered, got %v", err)
	}
}

func TestDefaultAndConsensusOrder(t *testing.T) {
	if got := backend.DefaultName(); got != "chatgpt" {
		t.Fatalf("DefaultName() = %q", got)
	}
	if got := backend.ConsensusOrder(); !reflect.DeepEqual(got, []string{"chatgpt", "gemini"}) {
		t.Fatalf("ConsensusOrder() = %v", got)
	}
}
