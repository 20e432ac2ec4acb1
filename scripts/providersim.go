// Providersim is a fake LLM provider endpoint for exercising the router
// locally. It accepts completion requests and answers with a canned
// response, with configurable failure rate and latency so circuit breaker
// tripping and failover can be observed end to end.
//
// Usage:
//
//	go run providersim.go -addr :8081 -name openai -failrate 0.0 -latency 50ms
//	go run providersim.go -addr :8082 -name anthropic -failrate 0.7 -latency 200ms
//
// Endpoints:
//   - POST /  completion endpoint (fails with 503 at the configured rate)
//   - GET  /health  always 200
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"
)

type request struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type response struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Content  string `json:"content"`
}

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	name := flag.String("name", "simulated", "provider name reported in responses")
	failRate := flag.Float64("failrate", 0.0, "fraction of requests answered with 503")
	latency := flag.Duration("latency", 50*time.Millisecond, "simulated processing time")
	flag.Parse()

	var served, failed int

	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		time.Sleep(*latency)
		served++

		if rand.Float64() < *failRate {
			failed++
			log.Printf("[%s] request %d: simulated failure (%d failed so far)", *name, served, failed)
			http.Error(w, "simulated provider failure", http.StatusServiceUnavailable)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		log.Printf("[%s] request %d: model=%s messages=%d", *name, served, req.Model, len(req.Messages))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response{
			Provider: *name,
			Model:    req.Model,
			Content:  fmt.Sprintf("canned completion from %s", *name),
		})
	})

	log.Printf("provider %s listening on %s (failrate=%.2f latency=%s)", *name, *addr, *failRate, *latency)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
