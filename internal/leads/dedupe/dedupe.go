// Package dedupe suppresses duplicate public intake submissions. The
// same visitor double-submitting a form within the window should create
// one lead, not two.
package dedupe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "intake:dedupe:"

// Deduper tracks recently seen intake identities in Redis.
type Deduper struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a deduper. The TTL bounds how long a resubmission is
// considered a duplicate.
func New(client *redis.Client, ttl time.Duration) *Deduper {
	return &Deduper{client: client, ttl: ttl}
}

// Seen records the submission identity and reports whether it was already
// present. The SETNX write and the check are one atomic operation, so two
// concurrent submissions cannot both pass.
func (d *Deduper) Seen(ctx context.Context, email, phone string) (bool, error) {
	key := identityKey(email, phone)
	if key == "" {
		// Nothing to key on; let the submission through.
		return false, nil
	}

	created, err := d.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedupe check: %w", err)
	}

	return !created, nil
}

// identityKey hashes the normalized contact identity. Email wins when
// both are present so a shared household phone doesn't block submissions.
func identityKey(email, phone string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	var identity string
	switch {
	case email != "":
		identity = "email:" + email
	case phone != "":
		identity = "phone:" + phone
	default:
		return ""
	}

	sum := sha256.Sum256([]byte(identity))
	return keyPrefix + hex.EncodeToString(sum[:])
}
