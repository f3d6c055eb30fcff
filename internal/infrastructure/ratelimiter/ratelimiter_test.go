package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllowExhaustsBurst(t *testing.T) {
	limiter := New(Options{MaxRatePerSecond: 1, MaxBurst: 3})

	for i := 0; i < 3; i++ {
		if !limiter.Allow("client-1") {
			t.Fatalf("request %d denied within burst", i+1)
		}
	}
	if limiter.Allow("client-1") {
		t.Fatal("request allowed past the burst")
	}
	if got := limiter.Remaining("client-1"); got != 0 {
		t.Fatalf("Remaining = %d, want 0", got)
	}
}

func TestAllowRefillsOverTime(t *testing.T) {
	limiter := New(Options{MaxRatePerSecond: 100, MaxBurst: 1})

	if !limiter.Allow("client-1") {
		t.Fatal("first request denied")
	}
	if limiter.Allow("client-1") {
		t.Fatal("second request allowed before refill")
	}

	// 100/s refills one token within a few tens of milliseconds.
	time.Sleep(50 * time.Millisecond)
	if !limiter.Allow("client-1") {
		t.Fatal("request denied after refill window")
	}
}

func TestSourcesAreIndependent(t *testing.T) {
	limiter := New(Options{MaxRatePerSecond: 1, MaxBurst: 1})

	if !limiter.Allow("client-1") {
		t.Fatal("client-1 denied")
	}
	if !limiter.Allow("client-2") {
		t.Fatal("client-2 throttled by client-1's bucket")
	}
}

func TestGetSourceKeyFallsBackToRemoteAddr(t *testing.T) {
	limiter := New(Options{MaxRatePerSecond: 1})

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(defaultSourceKey, "api-key-1")
	if got := limiter.GetSourceKey(r); got != "api-key-1" {
		t.Fatalf("source key = %q, want the header value", got)
	}

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	if got := limiter.GetSourceKey(r); got != r.RemoteAddr {
		t.Fatalf("source key = %q, want %q", got, r.RemoteAddr)
	}
}

func TestBucketRestartsAfterCacheExpiry(t *testing.T) {
	limiter := New(Options{MaxRatePerSecond: 1, MaxBurst: 1, CacheTTL: 10 * time.Millisecond})

	if !limiter.Allow("client-1") {
		t.Fatal("first request denied")
	}
	time.Sleep(30 * time.Millisecond)
	if !limiter.Allow("client-1") {
		t.Fatal("request denied after the cache entry expired")
	}
}
