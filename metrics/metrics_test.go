package metrics

import (
	"fmt"
	"sync"
	"testing"
)

func TestMetrics_RecordAdmission(t *testing.T) {
	m := New()

	m.RecordAdmission("alpha", true)
	m.RecordAdmission("alpha", true)
	m.RecordAdmission("alpha", false)
	m.RecordAdmission("beta", true)

	snapshot := m.GetSnapshot()
	if snapshot.TotalRequests != 4 {
		t.Errorf("TotalRequests = %d, want 4", snapshot.TotalRequests)
	}
	if snapshot.AdmittedRequests != 3 {
		t.Errorf("AdmittedRequests = %d, want 3", snapshot.AdmittedRequests)
	}
	if snapshot.RejectedRequests != 1 {
		t.Errorf("RejectedRequests = %d, want 1", snapshot.RejectedRequests)
	}
	if snapshot.UniqueAccounts != 2 {
		t.Errorf("UniqueAccounts = %d, want 2", snapshot.UniqueAccounts)
	}
}

func TestMetrics_TopAccounts(t *testing.T) {
	m := New()

	// 12 accounts with increasing traffic
	for i := 1; i <= 12; i++ {
		account := fmt.Sprintf("account-%02d", i)
		for j := 0; j < i; j++ {
			m.RecordAdmission(account, true)
		}
	}

	snapshot := m.GetSnapshot()
	if len(snapshot.TopAccounts) != 10 {
		t.Fatalf("len(TopAccounts) = %d, want 10", len(snapshot.TopAccounts))
	}
	if snapshot.TopAccounts[0].AccountID != "account-12" {
		t.Errorf("TopAccounts[0] = %s, want account-12", snapshot.TopAccounts[0].AccountID)
	}
	for i := 1; i < len(snapshot.TopAccounts); i++ {
		if snapshot.TopAccounts[i].TotalRequests > snapshot.TopAccounts[i-1].TotalRequests {
			t.Errorf("TopAccounts not sorted at index %d", i)
		}
	}
}

func TestMetrics_SnapshotIsCopy(t *testing.T) {
	m := New()
	m.RecordAdmission("alpha", true)

	snapshot := m.GetSnapshot()
	snapshot.TopAccounts[0].TotalRequests = 999

	if got := m.GetSnapshot().TopAccounts[0].TotalRequests; got != 1 {
		t.Errorf("mutating a snapshot leaked into the tracker: TotalRequests = %d, want 1", got)
	}
}

func TestMetrics_Concurrent(t *testing.T) {
	m := New()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			account := fmt.Sprintf("account-%d", n%3)
			for j := 0; j < 100; j++ {
				m.RecordAdmission(account, j%2 == 0)
			}
		}(i)
	}
	wg.Wait()

	snapshot := m.GetSnapshot()
	if snapshot.TotalRequests != 1000 {
		t.Errorf("TotalRequests = %d, want 1000", snapshot.TotalRequests)
	}
	if snapshot.AdmittedRequests != 500 || snapshot.RejectedRequests != 500 {
		t.Errorf("Admitted/Rejected = %d/%d, want 500/500", snapshot.AdmittedRequests, snapshot.RejectedRequests)
	}
	if snapshot.UniqueAccounts != 3 {
		t.Errorf("UniqueAccounts = %d, want 3", snapshot.UniqueAccounts)
	}
}
