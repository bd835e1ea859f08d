package tokengate

import (
	"fmt"
	"sync"
	"time"
)

// TokenBucket rate limits requests for a single account.
// It holds up to capacity tokens and regenerates one token every
// refillInterval seconds. Refill is lazy: tokens are recomputed inside the
// admission path, never by a background goroutine.
type TokenBucket struct {
	capacity       int64      // Maximum number of tokens the bucket can hold
	refillInterval int64      // Seconds required to regenerate one token
	tokens         int64      // Current available tokens, always in [0, capacity]
	lastAdmission  int64      // Unix seconds of the last admitted request, 0 = never
	mu             sync.Mutex // Protects bucket state
}

// NewBucket creates a new token bucket with the specified capacity and refill
// interval. The bucket starts full with no admission history.
//
// Example: NewBucket(10, 5) creates a bucket that:
// - Allows bursts up to 10 requests
// - Regenerates one token every 5 seconds (12 requests/minute sustained)
func NewBucket(capacity, refillIntervalSeconds int64) (*TokenBucket, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if refillIntervalSeconds <= 0 {
		return nil, ErrInvalidRefillInterval
	}

	return &TokenBucket{
		capacity:       capacity,
		refillInterval: refillIntervalSeconds,
		tokens:         capacity, // Start with full bucket
	}, nil
}

// TryAdmit attempts to consume one token at the given time, expressed in
// whole seconds since epoch. It refills the bucket from elapsed time, then
// admits the request if a token is available. Returns true if admitted.
// Rejection is a normal outcome, not an error.
// This method is thread-safe and can be called concurrently.
func (b *TokenBucket) TryAdmit(now int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(now)

	if b.tokens > 0 {
		b.lastAdmission = now
		b.tokens--
		return true
	}

	return false
}

// refill adds tokens accrued since the last admitted request.
// Tokens accrue only at whole refill-interval boundaries (floor division);
// partial intervals stay banked against lastAdmission, which advances only on
// a successful admission. A rejected request therefore never loses accrued
// progress. MUST be called with b.mu held.
func (b *TokenBucket) refill(now int64) {
	if b.lastAdmission == 0 {
		// Never admitted: the bucket is still full by construction.
		return
	}

	elapsed := now - b.lastAdmission
	if elapsed < 0 {
		// Clock went backwards, don't add tokens or touch the timestamp.
		return
	}

	b.tokens += elapsed / b.refillInterval
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
}

// Capacity returns the maximum number of tokens the bucket can hold.
func (b *TokenBucket) Capacity() int64 {
	return b.capacity
}

// RefillInterval returns the number of seconds required to regenerate one token.
func (b *TokenBucket) RefillInterval() int64 {
	return b.refillInterval
}

// Summary returns a read-only snapshot of the bucket for diagnostic display.
// It does not refill: a summary taken between requests reflects the token
// count as of the last admission call. The next TryAdmit recomputes it.
func (b *TokenBucket) Summary() Summary {
	b.mu.Lock()
	defer b.mu.Unlock()

	return Summary{
		Capacity:              b.capacity,
		RefillIntervalSeconds: b.refillInterval,
		Tokens:                b.tokens,
		LastAdmission:         b.lastAdmission,
		Admitted:              b.lastAdmission != 0,
	}
}

// Summary is a point-in-time view of a bucket's state.
type Summary struct {
	Capacity              int64 `json:"capacity"`
	RefillIntervalSeconds int64 `json:"refill_interval_seconds"`
	Tokens                int64 `json:"tokens"`
	// LastAdmission is the unix time of the last admitted request.
	// Meaningful only when Admitted is true.
	LastAdmission int64 `json:"last_admission,omitempty"`
	Admitted      bool  `json:"admitted"`
}

// String renders the summary as a human-readable block.
func (s Summary) String() string {
	last := "never"
	if s.Admitted {
		last = time.Unix(s.LastAdmission, 0).UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf(
		"Max Token Capacity: %d\nRefill Interval: %ds\nCurrent Token Count: %d\nLast Admission Time: %s",
		s.Capacity, s.RefillIntervalSeconds, s.Tokens, last,
	)
}
