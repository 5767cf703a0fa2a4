package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"luckywheel/internal/datastore"
	"luckywheel/internal/models"
)

func TestRecordClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("one claim per identity per day", func(t *testing.T) {
		db := newTestDB(t)
		serviceClaim := newTestServiceClaim(db, time.Now)

		const workers = 8
		recorded := make(chan bool, workers)

		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, ok, err := serviceClaim.Record(ctx, "LW777777", "2026-01-10", models.ClaimSourceWheel, "", false)
				if err != nil {
					t.Error(err)
					return
				}
				recorded <- ok
			}()
		}
		wg.Wait()
		close(recorded)

		wins := 0
		for ok := range recorded {
			if ok {
				wins++
			}
		}
		if wins != 1 {
			t.Fatalf("expected exactly one recorded claim, got %d", wins)
		}

		claims, err := datastore.GiftClaimsByDay(ctx, db, "2026-01-10")
		if err != nil {
			t.Fatal(err)
		}
		if len(claims) != 1 {
			t.Fatalf("expected a single row, got %d", len(claims))
		}
	})

	t.Run("different days are independent", func(t *testing.T) {
		db := newTestDB(t)
		serviceClaim := newTestServiceClaim(db, time.Now)

		_, ok, err := serviceClaim.Record(ctx, "LW777777", "2026-01-10", models.ClaimSourceWheel, "", false)
		if err != nil || !ok {
			t.Fatalf("first day: ok=%v err=%v", ok, err)
		}

		_, ok, err = serviceClaim.Record(ctx, "LW777777", "2026-01-11", models.ClaimSourceWheel, "", false)
		if err != nil || !ok {
			t.Fatalf("second day: ok=%v err=%v", ok, err)
		}
	})
}

func TestRegisterQuizWinner(t *testing.T) {
	ctx := context.Background()

	t.Run("mints a claim code", func(t *testing.T) {
		db := newTestDB(t)
		now := func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC) }
		serviceClaim := newTestServiceClaim(db, now)

		claim, recorded, deviceID, err := serviceClaim.RegisterQuizWinner(ctx, "10.0.0.1", "device-1", "winner@example.com")
		if err != nil {
			t.Fatal(err)
		}
		if !recorded {
			t.Fatal("expected a fresh claim")
		}
		if deviceID != "device-1" {
			t.Fatalf("expected the declared device token, got %q", deviceID)
		}
		if !strings.HasPrefix(claim.Code, NamespaceClaim.Prefix) {
			t.Fatalf("expected a %q code, got %q", NamespaceClaim.Prefix, claim.Code)
		}
		if claim.Email != "winner@example.com" {
			t.Fatalf("unexpected email %q", claim.Email)
		}
		if claim.ClaimDate != "2026-01-10" {
			t.Fatalf("unexpected day %q", claim.ClaimDate)
		}
	})

	t.Run("assigns a device token when absent", func(t *testing.T) {
		db := newTestDB(t)
		serviceClaim := newTestServiceClaim(db, time.Now)

		_, _, deviceID, err := serviceClaim.RegisterQuizWinner(ctx, "10.0.0.1", "", "")
		if err != nil {
			t.Fatal(err)
		}
		if deviceID == "" {
			t.Fatal("expected a generated device token")
		}
	})

	t.Run("repeat on the same day returns the existing claim", func(t *testing.T) {
		db := newTestDB(t)
		now := func() time.Time { return time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC) }
		serviceClaim := newTestServiceClaim(db, now)

		first, _, _, err := serviceClaim.RegisterQuizWinner(ctx, "10.0.0.1", "device-1", "a@example.com")
		if err != nil {
			t.Fatal(err)
		}

		second, recorded, _, err := serviceClaim.RegisterQuizWinner(ctx, "10.0.0.1", "device-1", "b@example.com")
		if err != nil {
			t.Fatal(err)
		}
		if recorded {
			t.Fatal("expected the duplicate to be rejected")
		}
		if second.Code != first.Code {
			t.Fatalf("expected the original claim back, got %q vs %q", second.Code, first.Code)
		}
	})

	t.Run("rate limited", func(t *testing.T) {
		db := newTestDB(t)
		serviceClaim := newTestServiceClaim(db, time.Now)
		serviceClaim.limiter = denyLimiter{}

		_, _, _, err := serviceClaim.RegisterQuizWinner(ctx, "10.0.0.1", "device-1", "")
		if err == nil {
			t.Fatal("expected an error")
		}
	})
}
