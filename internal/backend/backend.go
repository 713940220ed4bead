package backend

import (
	"context"
	"time"
)

// Depth labels selectable by the caller. Each backend maps them to its own
// effort parameter (CLI flag or thinking budget); unrecognized values are
// treated as DepthHigh.
const (
	DepthLow    = "low"
	DepthMedium = "medium"
	DepthHigh   = "high"
)

// DefaultTimeout bounds a single backend invocation when the request does
// not carry its own budget.
const DefaultTimeout = 180 * time.Second

// Request is one logical reasoning call. Prompt carries the fully assembled
// blob; the same value may be dispatched to any number of backends and is
// never mutated after construction.
type Request struct {
	Prompt  string
	Depth   string
	Timeout time.Duration
}

// Result is the outcome of one backend invocation attempt. Exactly one of
// Answer and Reason is populated, governed by OK.
type Result struct {
	Backend string
	OK      bool
	Answer  string
	Reason  string
}

// Backend defines the interface for reasoning backends.
type Backend interface {
	// Name is the stable backend identifier used in aggregate output.
	Name() string
	// CheckAvailable reports whether the backend can be invoked at all
	// (binary resolvable, credential present).
	CheckAvailable() error
	// Consult performs one reasoning call and returns the clean answer
	// text. It must honor ctx cancellation by tearing down whatever
	// process or request it started.
	Consult(ctx context.Context, req Request) (string, error)
}
