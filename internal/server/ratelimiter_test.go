package server

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	l := newRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("1.2.3.4") {
			t.Fatalf("request %d denied under limit", i+1)
		}
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("request over limit allowed")
	}
}

func TestRateLimiterIsPerKey(t *testing.T) {
	l := newRateLimiter(1, time.Minute)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first key denied")
	}
	if !l.Allow("5.6.7.8") {
		t.Fatal("second key denied after first key used its quota")
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("first key allowed over limit")
	}
}

func TestRateLimiterResetsAfterWindow(t *testing.T) {
	l := newRateLimiter(1, 20*time.Millisecond)

	if !l.Allow("1.2.3.4") {
		t.Fatal("first request denied")
	}
	if l.Allow("1.2.3.4") {
		t.Fatal("second request allowed inside window")
	}

	time.Sleep(30 * time.Millisecond)
	if !l.Allow("1.2.3.4") {
		t.Fatal("request denied after window reset")
	}
}
