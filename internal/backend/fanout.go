package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"multireasoner/internal/logging"
)

// FanOut dispatches the same request to every backend concurrently and waits
// for all of them to settle. Each invocation carries its own deadline and
// writes only its own slice slot, so no result is shared between goroutines.
// Results are indexed in dispatch order regardless of completion order.
func FanOut(ctx context.Context, backends []Backend, req Request) []Result {
	results := make([]Result, len(backends))

	var g errgroup.Group
	for i, b := range backends {
		g.Go(func() error {
			results[i] = Invoke(ctx, b, req)
			return nil
		})
	}
	// Invoke never returns an error; the group is used for its lifecycle
	// guarantee that every dispatched unit is accounted for.
	_ = g.Wait()

	succeeded := 0
	for _, r := range results {
		if r.OK {
			succeeded++
		}
	}
	logging.New("fanout").Info("fan-out settled", "backends", len(backends), "succeeded", succeeded)

	return results
}

// Combine renders the aggregate of a fan-out call. Successful backends are
// listed in dispatch order, each under its own labeled section; if any
// backend failed, a single trailing note enumerates every failure. When no
// backend succeeded, the aggregate itself is a failure whose text joins all
// failure reasons.
func Combine(results []Result) (string, error) {
	var parts []string
	var failures []string
	for _, r := range results {
		if r.OK {
			parts = append(parts, fmt.Sprintf("## %s\n\n%s", strings.ToUpper(r.Backend), r.Answer))
		} else {
			failures = append(failures, fmt.Sprintf("%s: %s", r.Backend, r.Reason))
		}
	}

	if len(parts) == 0 {
		return "", errors.New(strings.Join(failures, "; "))
	}

	if len(failures) > 0 {
		parts = append(parts, fmt.Sprintf("\n---\n*Note: %s*", strings.Join(failures, "; ")))
	}

	return strings.Join(parts, "\n\n---\n\n"), nil
}
