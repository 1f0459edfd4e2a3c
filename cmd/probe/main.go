// Command probe drives concurrent load against a running fact-relay instance
// and reports outcome counts and latency percentiles. Point it at a server
// running a fault injection profile to watch the retry and fallback policies
// absorb failures.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"fact-relay/internal/observability/logging"
)

type result struct {
	status  int
	latency time.Duration
	err     error
}

type factDoc struct {
	Fact   string `json:"fact"`
	Length int    `json:"length"`
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "base URL of the fact-relay server")
	count := flag.Int("count", 50, "total number of requests to send")
	concurrency := flag.Int("concurrency", 5, "number of requests in flight at once")
	timeout := flag.Duration("timeout", 30*time.Second, "per-request timeout")
	flag.Parse()

	logger := logging.NewTextLogger()

	if *count < 1 || *concurrency < 1 {
		logger.Error("count and concurrency must be at least 1")
		os.Exit(2)
	}

	client := &http.Client{Timeout: *timeout}
	url := *addr + "/fact"

	logger.Info("probing",
		slog.String("url", url),
		slog.Int("count", *count),
		slog.Int("concurrency", *concurrency))

	results := make([]result, *count)

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(*concurrency)

	start := time.Now()
	for i := 0; i < *count; i++ {
		g.Go(func() error {
			// Each goroutine owns its slot, no locking needed.
			results[i] = fetchOne(ctx, client, url)
			return nil
		})
	}
	_ = g.Wait()
	elapsed := time.Since(start)

	ok := report(logger, results, elapsed)
	if !ok {
		os.Exit(1)
	}
}

func fetchOne(ctx context.Context, client *http.Client, url string) result {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return result{err: err}
	}

	start := time.Now()
	resp, err := client.Do(req)
	latency := time.Since(start)
	if err != nil {
		return result{latency: latency, err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	var doc factDoc
	if resp.StatusCode == http.StatusOK {
		if decErr := json.NewDecoder(resp.Body).Decode(&doc); decErr != nil {
			return result{status: resp.StatusCode, latency: latency, err: decErr}
		}
	}
	return result{status: resp.StatusCode, latency: latency}
}

// report prints the summary and returns false when every request failed.
func report(logger *slog.Logger, results []result, elapsed time.Duration) bool {
	var succeeded, failed, transportErrs int
	statusCounts := make(map[int]int)
	latencies := make([]time.Duration, 0, len(results))

	for _, r := range results {
		if r.err != nil {
			failed++
			transportErrs++
			continue
		}
		statusCounts[r.status]++
		latencies = append(latencies, r.latency)
		if r.status == http.StatusOK {
			succeeded++
		} else {
			failed++
		}
	}

	logger.Info("probe finished",
		slog.Duration("elapsed", elapsed),
		slog.Int("succeeded", succeeded),
		slog.Int("failed", failed),
		slog.Int("transport_errors", transportErrs))

	for status, n := range statusCounts {
		fmt.Printf("  HTTP %d: %d\n", status, n)
	}

	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
		fmt.Printf("  latency p50: %v\n", percentile(latencies, 0.50))
		fmt.Printf("  latency p95: %v\n", percentile(latencies, 0.95))
		fmt.Printf("  latency p99: %v\n", percentile(latencies, 0.99))
	}

	return succeeded > 0
}

// percentile returns the p-th percentile of sorted latencies.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}
