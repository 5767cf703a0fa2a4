package services

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"luckywheel/internal/datastore"
	"luckywheel/internal/models"
	"luckywheel/internal/pkg"
	"luckywheel/internal/pkg/caching"

	"github.com/rs/zerolog/log"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceDraw struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
	loc        *time.Location

	now func() time.Time
}

func NewServiceDraw(container *do.Injector) (*ServiceDraw, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	loc, err := do.InvokeNamed[*time.Location](container, "draw-location")
	if err != nil {
		return nil, err
	}

	return &ServiceDraw{container, postgresDB, cache, loc, time.Now}, nil
}

// SelectWinner picks one qualifying claim for the day, idempotently. Any
// number of concurrent callers (cron firings, admin triggers) resolve to the
// same winner: the draw_date unique index decides the race and the losers
// re-read the row that won.
func (service *ServiceDraw) SelectWinner(ctx context.Context, day string) (*models.DrawResult, error) {
	existing, err := datastore.GetWinnerByDay(ctx, service.postgresDB, day)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	if existing != nil {
		return &models.DrawResult{Outcome: models.DrawOutcomeAlreadyChosen, Winner: existing}, nil
	}

	claims, err := datastore.GiftClaimsByDay(ctx, service.postgresDB, day)
	if err != nil {
		return nil, err
	}

	if len(claims) == 0 {
		// no row written; callable again later the same day if claims arrive
		return &models.DrawResult{Outcome: models.DrawOutcomeNoQualifiers}, nil
	}

	picked := claims[rand.Intn(len(claims))]

	winner := &models.DailyWinner{
		DrawDate: day,
		Identity: picked.Identity,
		Code:     picked.Code,
		PickedAt: service.now(),
	}

	chosen, err := datastore.InsertDailyWinner(ctx, service.postgresDB, winner)
	if err != nil {
		return nil, err
	}

	if !chosen {
		existing, err := datastore.GetWinnerByDay(ctx, service.postgresDB, day)
		if err != nil {
			return nil, err
		}
		return &models.DrawResult{Outcome: models.DrawOutcomeAlreadyChosen, Winner: existing}, nil
	}

	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyLatestWinner())

	log.Info().Str("day", day).Str("identity", winner.Identity).Int("claims", len(claims)).Msg("daily winner chosen")

	return &models.DrawResult{Outcome: models.DrawOutcomeChosen, Winner: winner}, nil
}

func (service *ServiceDraw) LatestWinner(ctx context.Context) (*models.DailyWinner, error) {
	callback := func() (*models.DailyWinner, error) {
		return datastore.LatestWinner(ctx, service.postgresDB)
	}

	return caching.UseCache(ctx, service.cache, DBKeyLatestWinner(), CACHE_TTL_1_MIN, callback)
}

// Today is the current calendar day in the configured draw time zone.
func (service *ServiceDraw) Today() string {
	return pkg.DayString(service.now(), service.loc)
}

// PreviousDay is the day that ended at the most recent local midnight.
func (service *ServiceDraw) PreviousDay() string {
	return pkg.PreviousDayString(service.now(), service.loc)
}
