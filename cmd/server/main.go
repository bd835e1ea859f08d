package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/yourusername/tokengate/metrics"
	"github.com/yourusername/tokengate/pkg/tokengate"
)

func main() {
	// Command-line flags
	port := flag.String("port", "8080", "Port to run the server on")
	configFile := flag.String("config", "cmd/server/config.yaml", "Path to configuration file")
	extractorSpec := flag.String("extractor", "header:X-Account-ID", "How to identify the account (header:Name, bearer, query:param, static:account)")
	flag.Parse()

	// Build the registry from configuration
	log.Println("Loading configuration from:", *configFile)
	config, err := tokengate.LoadConfigFromFile(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	registry, err := config.BuildRegistry()
	if err != nil {
		log.Fatalf("Failed to build registry: %v", err)
	}
	log.Printf("Registered %d accounts", registry.Len())

	extractor, err := tokengate.ParseAccountExtractorConfig(*extractorSpec)
	if err != nil {
		log.Fatalf("Invalid extractor: %v", err)
	}

	tracker := metrics.New()

	gate, err := tokengate.NewGate(registry,
		tokengate.WithExtractor(extractor),
		tokengate.WithRecorder(tracker),
	)
	if err != nil {
		log.Fatalf("Failed to create gate: %v", err)
	}

	mux := http.NewServeMux()

	// Health check endpoint (no admission control)
	mux.HandleFunc("/health", healthHandler)

	// API endpoint with per-account admission control
	mux.Handle("/api/ping", gate.Middleware(http.HandlerFunc(pingHandler)))

	// Metrics snapshot
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tracker.GetSnapshot())
	})

	// Per-account bucket summaries
	mux.HandleFunc("/accounts", func(w http.ResponseWriter, r *http.Request) {
		summaries := make(map[string]tokengate.Summary)
		for _, account := range registry.Accounts() {
			if summary, err := registry.Summary(account); err == nil {
				summaries[account] = summary
			}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(summaries)
	})

	addr := ":" + *port
	log.Printf("Starting server on http://localhost%s", addr)
	log.Println("Try these commands:")
	log.Printf("  curl http://localhost%s/health\n", addr)
	log.Printf("  curl -H 'X-Account-ID: alpha' http://localhost%s/api/ping\n", addr)
	log.Printf("  curl http://localhost%s/metrics\n", addr)

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "pong")
}
