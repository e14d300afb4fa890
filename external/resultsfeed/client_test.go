package resultsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/fantasy-wrestling/internal/platform/logging"
	"github.com/riskibarqy/fantasy-wrestling/internal/platform/resilience"
)

func TestFetchRaw_ReturnsPageBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Big Slam defeated The Mauler via pinfall"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	content, err := client.FetchRaw(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(content, "Big Slam defeated The Mauler") {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestFetchRaw_RetriesOnServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("results"))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{MaxRetries: 2, Logger: logging.NewNop()})

	content, err := client.FetchRaw(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "results" {
		t.Fatalf("unexpected content: %q", content)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected 2 requests, got %d", got)
	}
}

func TestFetchRaw_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{MaxRetries: 3, Logger: logging.NewNop()})

	if _, err := client.FetchRaw(context.Background(), server.URL); err == nil {
		t.Fatalf("expected error for 404 response")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 request, got %d", got)
	}
}

func TestFetchRaw_RejectsNonHTTPURL(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{Logger: logging.NewNop()})

	if _, err := client.FetchRaw(context.Background(), "ftp://example.com/results.txt"); err == nil {
		t.Fatalf("expected error for non-http scheme")
	}
	if _, err := client.FetchRaw(context.Background(), "https://"); err == nil {
		t.Fatalf("expected error for empty host")
	}
}

func TestFetchRaw_CircuitOpensAfterRepeatedFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		Logger: logging.NewNop(),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      resilience.DefaultCircuitBreakerConfig().OpenTimeout,
			HalfOpenMaxReq:   1,
		},
	})

	if _, err := client.FetchRaw(context.Background(), server.URL); err == nil {
		t.Fatalf("expected error for failing upstream")
	}

	_, err := client.FetchRaw(context.Background(), server.URL)
	if err == nil {
		t.Fatalf("expected circuit rejection")
	}
	if !strings.Contains(err.Error(), "temporarily unavailable") {
		t.Fatalf("expected circuit-open error, got: %v", err)
	}
}
