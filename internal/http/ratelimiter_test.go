package http

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinBudget(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimiterSettings{Burst: 3, RequestsPerSecond: 3, ClientTTL: time.Minute})
	t.Cleanup(rl.Close)

	current := time.Unix(0, 0)
	rl.now = func() time.Time {
		return current
	}

	key := "1.2.3.4"

	for i := 0; i < 3; i++ {
		if !rl.Allow(key) {
			t.Fatalf("expected request %d to be allowed", i+1)
		}
	}

	if rl.Allow(key) {
		t.Fatalf("expected fourth request to be denied")
	}

	current = current.Add(time.Second)

	if !rl.Allow(key) {
		t.Fatalf("expected request after refill to be allowed")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimiterSettings{Burst: 1, RequestsPerSecond: 1, ClientTTL: time.Minute})
	t.Cleanup(rl.Close)

	if !rl.Allow("a") || rl.Allow("a") {
		t.Fatalf("expected a single request for client a")
	}
	if !rl.Allow("b") {
		t.Fatalf("expected client b to have its own budget")
	}
}

func TestRateLimiterPrunesIdleClients(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(RateLimiterSettings{Burst: 1, RequestsPerSecond: 1, ClientTTL: time.Hour})
	t.Cleanup(rl.Close)

	current := time.Unix(0, 0)
	rl.now = func() time.Time {
		return current
	}

	rl.Allow("stale")
	current = current.Add(2 * time.Hour)
	rl.Allow("fresh")

	rl.pruneStale()

	if got := rl.size(); got != 1 {
		t.Fatalf("expected 1 remaining client, got %d", got)
	}
}
