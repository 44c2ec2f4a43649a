package dedupe

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestDeduper(t *testing.T) (*Deduper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Hour), mr
}

func TestSeenFirstSubmissionPasses(t *testing.T) {
	d, _ := newTestDeduper(t)

	seen, err := d.Seen(context.Background(), "owner@example.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen {
		t.Error("first submission should not be a duplicate")
	}
}

func TestSeenResubmissionBlocked(t *testing.T) {
	d, _ := newTestDeduper(t)
	ctx := context.Background()

	if _, err := d.Seen(ctx, "owner@example.com", "+15125550134"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen, err := d.Seen(ctx, "owner@example.com", "+15125550134")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen {
		t.Error("resubmission should be a duplicate")
	}
}

func TestSeenEmailCaseInsensitive(t *testing.T) {
	d, _ := newTestDeduper(t)
	ctx := context.Background()

	if _, err := d.Seen(ctx, "Owner@Example.com", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen, err := d.Seen(ctx, "owner@example.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen {
		t.Error("same email with different case should be a duplicate")
	}
}

func TestSeenPhoneOnly(t *testing.T) {
	d, _ := newTestDeduper(t)
	ctx := context.Background()

	if _, err := d.Seen(ctx, "", "+15125550134"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen, err := d.Seen(ctx, "", "+15125550134")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !seen {
		t.Error("same phone should be a duplicate")
	}
}

func TestSeenNoIdentityAlwaysPasses(t *testing.T) {
	d, _ := newTestDeduper(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		seen, err := d.Seen(ctx, "", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen {
			t.Error("anonymous submissions should never be deduplicated")
		}
	}
}

func TestSeenExpiresAfterTTL(t *testing.T) {
	d, mr := newTestDeduper(t)
	ctx := context.Background()

	if _, err := d.Seen(ctx, "owner@example.com", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	seen, err := d.Seen(ctx, "owner@example.com", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen {
		t.Error("submission after TTL should not be a duplicate")
	}
}
