package tokengate

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Clock supplies the current time in whole seconds since epoch.
// Admission decisions take the time from the caller, which keeps the core
// deterministic under test; SystemClock is the production implementation.
type Clock func() int64

// SystemClock returns the wall-clock time in whole seconds.
func SystemClock() int64 {
	return time.Now().Unix()
}

// AdmissionRecorder receives the outcome of every admission decision made by
// the middleware. Implemented by the metrics package.
type AdmissionRecorder interface {
	RecordAdmission(accountID string, admitted bool)
}

// Gate wraps a Registry with the HTTP plumbing a service handler needs:
// account extraction, clock injection, standard rate limit headers, and an
// optional metrics hook.
type Gate struct {
	registry  *Registry
	extractor AccountExtractor
	clock     Clock
	recorder  AdmissionRecorder
}

// NewGate creates a Gate around an existing registry.
// By default accounts are extracted from the X-Account-ID header and time is
// taken from the system clock.
func NewGate(registry *Registry, opts ...Option) (*Gate, error) {
	if registry == nil {
		return nil, fmt.Errorf("%w: registry cannot be nil", ErrInvalidConfig)
	}

	g := &Gate{
		registry:  registry,
		extractor: ExtractHeader("X-Account-ID"),
		clock:     SystemClock,
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return g, nil
}

// Registry returns the underlying registry, for drivers that register and
// deregister accounts while the gate is serving.
func (g *Gate) Registry() *Registry {
	return g.registry
}

// Middleware returns an HTTP middleware that admits or rejects each request
// against the account's bucket. It sets standard rate limit headers and
// returns 429 when the bucket is empty.
//
// Headers:
//   - X-RateLimit-Limit: the bucket's capacity
//   - X-RateLimit-Remaining: tokens left after this decision
//   - Retry-After: advisory seconds until one token regenerates (on 429)
//
// Requests without an extractable account get 400; requests for accounts the
// registry does not know get 403 (the registry never creates buckets on
// demand).
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, err := g.extractor(r)
		if err != nil {
			http.Error(w, "Unable to identify account", http.StatusBadRequest)
			return
		}

		admitted, err := g.registry.Admit(account, g.clock())
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) {
				http.Error(w, "Unknown account", http.StatusForbidden)
				return
			}
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if g.recorder != nil {
			g.recorder.RecordAdmission(account, admitted)
		}

		// The summary is a post-decision snapshot; it can already be stale
		// under concurrent traffic, which is fine for advisory headers.
		summary, serr := g.registry.Summary(account)
		if serr == nil {
			w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", summary.Capacity))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", summary.Tokens))
		}

		if !admitted {
			if serr == nil {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", summary.RefillIntervalSeconds))
			}
			http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
