package tokengate

import "sync"

// Registry maps account identifiers to their token buckets.
// The map is guarded by an RWMutex for safe concurrent mutation; admission
// concurrency is delegated to each bucket's own lock, so admissions for
// different accounts never contend with each other.
//
// Accounts are registered explicitly. The registry never creates a bucket on
// demand: admitting against an unknown account returns ErrAccountNotFound.
type Registry struct {
	accounts map[string]*TokenBucket
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		accounts: make(map[string]*TokenBucket),
	}
}

// Register inserts or replaces the bucket for an account.
// Replacing an existing account's bucket discards the previous bucket's
// state; there is no merge.
func (r *Registry) Register(accountID string, bucket *TokenBucket) error {
	if accountID == "" {
		return ErrInvalidAccount
	}
	if bucket == nil {
		return ErrNilBucket
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[accountID] = bucket
	return nil
}

// RegisterNew constructs a fresh bucket with the given parameters and
// registers it for the account, returning the bucket.
func (r *Registry) RegisterNew(accountID string, capacity, refillIntervalSeconds int64) (*TokenBucket, error) {
	bucket, err := NewBucket(capacity, refillIntervalSeconds)
	if err != nil {
		return nil, err
	}
	if err := r.Register(accountID, bucket); err != nil {
		return nil, err
	}
	return bucket, nil
}

// Deregister removes an account's bucket immediately.
// Returns ErrAccountNotFound if the account is not registered.
func (r *Registry) Deregister(accountID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.accounts[accountID]; !exists {
		return ErrAccountNotFound
	}
	delete(r.accounts, accountID)
	return nil
}

// Admit attempts to admit one request for the account at the given time,
// expressed in whole seconds since epoch. Returns ErrAccountNotFound if the
// account is not registered; no bucket is created as a side effect.
// A false result with a nil error means the request was rate limited.
func (r *Registry) Admit(accountID string, now int64) (bool, error) {
	bucket, err := r.lookup(accountID)
	if err != nil {
		return false, err
	}
	return bucket.TryAdmit(now), nil
}

// Summary returns a diagnostic snapshot of the account's bucket.
func (r *Registry) Summary(accountID string) (Summary, error) {
	bucket, err := r.lookup(accountID)
	if err != nil {
		return Summary{}, err
	}
	return bucket.Summary(), nil
}

// Len returns the number of registered accounts.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

// Accounts returns the identifiers of all registered accounts.
// Order is not specified.
func (r *Registry) Accounts() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.accounts))
	for id := range r.accounts {
		ids = append(ids, id)
	}
	return ids
}

func (r *Registry) lookup(accountID string) (*TokenBucket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.accounts[accountID]
	if !exists {
		return nil, ErrAccountNotFound
	}
	return bucket, nil
}
