package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/yourusername/tokengate/metrics"
	"github.com/yourusername/tokengate/pkg/tokengate"
)

func main() {
	// Command-line flags
	configFile := flag.String("config", "cmd/demo/config.yaml", "Path to configuration file")
	duration := flag.Duration("duration", 60*time.Second, "How long to run the simulation")
	interval := flag.Duration("interval", 3*time.Second, "Delay between request rounds per worker")
	workers := flag.Int("workers", 2, "Number of concurrent workers issuing requests")
	flag.Parse()

	// Initialize the registry from configuration
	log.Println("Loading configuration from:", *configFile)
	config, err := tokengate.LoadConfigFromFile(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	registry, err := config.BuildRegistry()
	if err != nil {
		log.Fatalf("Failed to build registry: %v", err)
	}

	accounts := registry.Accounts()
	sort.Strings(accounts)
	log.Printf("Registered %d accounts", registry.Len())

	for _, account := range accounts {
		summary, err := registry.Summary(account)
		if err != nil {
			log.Fatalf("Failed to read summary for account %s: %v", account, err)
		}
		fmt.Printf("**** Summary of Specs for Account %s ****\n%s\n\n", account, summary)
	}

	tracker := metrics.New()
	deadline := time.Now().Add(*duration)

	log.Printf("Simulating requests for %v with %d workers (one round every %v)", *duration, *workers, *interval)

	var wg sync.WaitGroup
	for i := 1; i <= *workers; i++ {
		wg.Add(1)
		label := fmt.Sprintf("worker-%d", i)
		go func() {
			defer wg.Done()
			simulateRequests(label, registry, tracker, accounts, deadline, *interval)
		}()
	}
	wg.Wait()

	log.Println("Simulation complete")
	for _, account := range accounts {
		summary, err := registry.Summary(account)
		if err != nil {
			continue
		}
		fmt.Printf("**** Final Summary for Account %s ****\n%s\n\n", account, summary)
	}

	snapshot := tracker.GetSnapshot()
	log.Printf("Requests: %d total, %d admitted, %d rejected across %d accounts",
		snapshot.TotalRequests, snapshot.AdmittedRequests, snapshot.RejectedRequests, snapshot.UniqueAccounts)
}

// simulateRequests issues one admission attempt per account on a fixed
// cadence until the deadline. The label only identifies the worker in the
// log output; the core never inspects goroutine identity.
func simulateRequests(label string, registry *tokengate.Registry, tracker *metrics.Metrics, accounts []string, deadline time.Time, interval time.Duration) {
	for time.Now().Before(deadline) {
		for _, account := range accounts {
			admitted, err := registry.Admit(account, time.Now().Unix())
			if err != nil {
				log.Printf("[%s] account %s: %v", label, account, err)
				continue
			}
			tracker.RecordAdmission(account, admitted)

			if admitted {
				log.Printf("[%s] admitted request for account %s", label, account)
			} else {
				retry := int64(0)
				if summary, err := registry.Summary(account); err == nil {
					retry = summary.RefillIntervalSeconds
				}
				log.Printf("[%s] rejected request for account %s, try again in %d seconds", label, account, retry)
			}
		}
		time.Sleep(interval)
	}
}
