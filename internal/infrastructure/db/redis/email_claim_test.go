package redis

import (
	"context"
	"os"
	"testing"
	"time"
)

// Runs against a live server only when REDIS_ADDR is set.
func TestEmailClaimer_ClaimRelease(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	claimer := NewEmailClaimer(client, 5*time.Second)
	email := "claim-test-" + time.Now().Format("150405.000000") + "@example.com"
	defer func() { _ = claimer.Release(ctx, email) }()

	ok, err := claimer.Claim(ctx, email)
	if err != nil || !ok {
		t.Fatalf("first claim: ok=%v err=%v", ok, err)
	}

	ok, err = claimer.Claim(ctx, email)
	if err != nil || ok {
		t.Fatalf("second claim should be refused: ok=%v err=%v", ok, err)
	}

	if err := claimer.Release(ctx, email); err != nil {
		t.Fatalf("release: %v", err)
	}

	ok, err = claimer.Claim(ctx, email)
	if err != nil || !ok {
		t.Fatalf("claim after release: ok=%v err=%v", ok, err)
	}
}

func TestEmailClaimer_Key(t *testing.T) {
	c := NewEmailClaimer(nil, 0)
	if got := c.key("alice@example.com"); got != "register:alice@example.com" {
		t.Fatalf("unexpected key %q", got)
	}
	if c.ttl != defaultClaimTTL {
		t.Fatalf("expected default ttl, got %s", c.ttl)
	}
}
