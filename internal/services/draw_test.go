package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"luckywheel/internal/datastore"
	"luckywheel/internal/models"
)

func seedClaims(t *testing.T, serviceClaim *ServiceClaim, day string, n int) {
	t.Helper()

	for i := 0; i < n; i++ {
		identity := fmt.Sprintf("LW10000%d", i)
		_, ok, err := serviceClaim.Record(context.Background(), identity, day, models.ClaimSourceWheel, "", false)
		if err != nil || !ok {
			t.Fatalf("seeding claim %d: ok=%v err=%v", i, ok, err)
		}
	}
}

func TestSelectWinner(t *testing.T) {
	ctx := context.Background()

	t.Run("exactly one winner per day", func(t *testing.T) {
		db := newTestDB(t)
		serviceClaim := newTestServiceClaim(db, time.Now)
		serviceDraw := newTestServiceDraw(db, time.Now)

		seedClaims(t, serviceClaim, "2026-01-10", 5)

		results := make(chan *models.DrawResult, 2)
		var wg sync.WaitGroup
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result, err := serviceDraw.SelectWinner(ctx, "2026-01-10")
				if err != nil {
					t.Error(err)
					return
				}
				results <- result
			}()
		}
		wg.Wait()
		close(results)

		chosen := 0
		identities := map[string]bool{}
		for result := range results {
			if result.Outcome == models.DrawOutcomeChosen {
				chosen++
			}
			if result.Winner == nil {
				t.Fatal("expected a winner in every result")
			}
			identities[result.Winner.Identity] = true
		}
		if chosen != 1 {
			t.Fatalf("expected exactly one chosen outcome, got %d", chosen)
		}
		if len(identities) != 1 {
			t.Fatalf("concurrent selections disagree on the winner: %v", identities)
		}

		result, err := serviceDraw.SelectWinner(ctx, "2026-01-10")
		if err != nil {
			t.Fatal(err)
		}
		if result.Outcome != models.DrawOutcomeAlreadyChosen {
			t.Fatalf("expected %q, got %q", models.DrawOutcomeAlreadyChosen, result.Outcome)
		}
		if !identities[result.Winner.Identity] {
			t.Fatalf("later selection returned a different winner %q", result.Winner.Identity)
		}
	})

	t.Run("winner comes from the day's claims", func(t *testing.T) {
		db := newTestDB(t)
		serviceClaim := newTestServiceClaim(db, time.Now)
		serviceDraw := newTestServiceDraw(db, time.Now)

		_, _, err := serviceClaim.Record(ctx, "LW111111", "2026-01-10", models.ClaimSourceWheel, "", false)
		if err != nil {
			t.Fatal(err)
		}
		_, _, err = serviceClaim.Record(ctx, "LW222222", "2026-01-11", models.ClaimSourceWheel, "", false)
		if err != nil {
			t.Fatal(err)
		}

		result, err := serviceDraw.SelectWinner(ctx, "2026-01-10")
		if err != nil {
			t.Fatal(err)
		}
		if result.Outcome != models.DrawOutcomeChosen {
			t.Fatalf("expected %q, got %q", models.DrawOutcomeChosen, result.Outcome)
		}
		if result.Winner.Identity != "LW111111" {
			t.Fatalf("winner %q is not from the drawn day", result.Winner.Identity)
		}
	})

	t.Run("no qualifiers writes nothing", func(t *testing.T) {
		db := newTestDB(t)
		serviceDraw := newTestServiceDraw(db, time.Now)

		result, err := serviceDraw.SelectWinner(ctx, "2026-01-10")
		if err != nil {
			t.Fatal(err)
		}
		if result.Outcome != models.DrawOutcomeNoQualifiers {
			t.Fatalf("expected %q, got %q", models.DrawOutcomeNoQualifiers, result.Outcome)
		}
		if result.Winner != nil {
			t.Fatal("expected no winner")
		}

		if _, err := datastore.GetWinnerByDay(ctx, db, "2026-01-10"); err != sql.ErrNoRows {
			t.Fatalf("expected no row, got %v", err)
		}

		// a claim arriving later the same day makes a retry succeed
		serviceClaim := newTestServiceClaim(db, time.Now)
		if _, _, err := serviceClaim.Record(ctx, "LW333333", "2026-01-10", models.ClaimSourceQuiz, "", false); err != nil {
			t.Fatal(err)
		}

		result, err = serviceDraw.SelectWinner(ctx, "2026-01-10")
		if err != nil {
			t.Fatal(err)
		}
		if result.Outcome != models.DrawOutcomeChosen {
			t.Fatalf("expected %q, got %q", models.DrawOutcomeChosen, result.Outcome)
		}
	})
}

func TestLatestWinner(t *testing.T) {
	ctx := context.Background()

	db := newTestDB(t)
	serviceClaim := newTestServiceClaim(db, time.Now)
	serviceDraw := newTestServiceDraw(db, time.Now)

	for _, day := range []string{"2026-01-10", "2026-01-11"} {
		_, _, err := serviceClaim.Record(ctx, "LW444444", day, models.ClaimSourceWheel, "", false)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := serviceDraw.SelectWinner(ctx, day); err != nil {
			t.Fatal(err)
		}
	}

	winner, err := serviceDraw.LatestWinner(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if winner.DrawDate != "2026-01-11" {
		t.Fatalf("expected the most recent day, got %q", winner.DrawDate)
	}
}
