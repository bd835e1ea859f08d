package metrics

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks admission statistics across all accounts
type Metrics struct {
	totalRequests    atomic.Int64
	admittedRequests atomic.Int64
	rejectedRequests atomic.Int64

	// Per-account stats
	mu           sync.RWMutex
	accountStats map[string]*AccountStats
	startTime    time.Time
}

// AccountStats tracks statistics for a specific account
type AccountStats struct {
	AccountID        string    `json:"account_id"`
	TotalRequests    int64     `json:"total_requests"`
	AdmittedRequests int64     `json:"admitted_requests"`
	RejectedRequests int64     `json:"rejected_requests"`
	FirstRequestAt   time.Time `json:"first_request_at"`
	LastRequestAt    time.Time `json:"last_request_at"`
}

// New creates a new metrics tracker
func New() *Metrics {
	return &Metrics{
		accountStats: make(map[string]*AccountStats),
		startTime:    time.Now(),
	}
}

// RecordAdmission records one admission decision for an account
func (m *Metrics) RecordAdmission(accountID string, admitted bool) {
	m.totalRequests.Add(1)

	if admitted {
		m.admittedRequests.Add(1)
	} else {
		m.rejectedRequests.Add(1)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stats, exists := m.accountStats[accountID]
	if !exists {
		stats = &AccountStats{
			AccountID:      accountID,
			FirstRequestAt: time.Now(),
		}
		m.accountStats[accountID] = stats
	}

	stats.TotalRequests++
	if admitted {
		stats.AdmittedRequests++
	} else {
		stats.RejectedRequests++
	}
	stats.LastRequestAt = time.Now()
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Copy account stats
	topAccounts := make([]*AccountStats, 0, len(m.accountStats))
	for _, stats := range m.accountStats {
		copied := *stats
		topAccounts = append(topAccounts, &copied)
	}

	// Sort by total requests (top 10)
	sort.Slice(topAccounts, func(i, j int) bool {
		return topAccounts[i].TotalRequests > topAccounts[j].TotalRequests
	})
	if len(topAccounts) > 10 {
		topAccounts = topAccounts[:10]
	}

	uptime := time.Since(m.startTime)

	return &Snapshot{
		TotalRequests:    m.totalRequests.Load(),
		AdmittedRequests: m.admittedRequests.Load(),
		RejectedRequests: m.rejectedRequests.Load(),
		UniqueAccounts:   int64(len(m.accountStats)),
		TopAccounts:      topAccounts,
		UptimeSeconds:    int64(uptime.Seconds()),
		StartTime:        m.startTime,
	}
}

// Snapshot represents a point-in-time view of metrics
type Snapshot struct {
	TotalRequests    int64           `json:"total_requests"`
	AdmittedRequests int64           `json:"admitted_requests"`
	RejectedRequests int64           `json:"rejected_requests"`
	UniqueAccounts   int64           `json:"unique_accounts"`
	TopAccounts      []*AccountStats `json:"top_accounts"`
	UptimeSeconds    int64           `json:"uptime_seconds"`
	StartTime        time.Time       `json:"start_time"`
}
