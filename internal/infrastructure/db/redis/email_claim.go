package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultClaimTTL = 30 * time.Second

// EmailClaimer holds a short-lived Redis key per email while a registration
// is in flight. Key format: register:<email>
type EmailClaimer struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewEmailClaimer wraps client; a non-positive ttl uses defaultClaimTTL.
func NewEmailClaimer(client redis.Cmdable, ttl time.Duration) *EmailClaimer {
	if ttl <= 0 {
		ttl = defaultClaimTTL
	}
	return &EmailClaimer{client: client, ttl: ttl}
}

// Claim reports whether this caller now owns the email.
func (c *EmailClaimer) Claim(ctx context.Context, email string) (bool, error) {
	ok, err := c.client.SetNX(ctx, c.key(email), "1", c.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("claim email: %w", err)
	}
	return ok, nil
}

// Release drops the claim; it expires on its own if this is never called.
func (c *EmailClaimer) Release(ctx context.Context, email string) error {
	if err := c.client.Del(ctx, c.key(email)).Err(); err != nil {
		return fmt.Errorf("release email claim: %w", err)
	}
	return nil
}

func (c *EmailClaimer) key(email string) string {
	return "register:" + email
}
