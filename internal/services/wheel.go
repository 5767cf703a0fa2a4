package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"luckywheel/internal/datastore"
	"luckywheel/internal/models"
	"luckywheel/internal/pkg"
	"luckywheel/internal/pkg/caching"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/mroth/weightedrand/v2"
	"github.com/rs/zerolog/log"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

// CooldownError is the expected "come back later" outcome of a gated spin,
// with user-facing granularity in whole hours.
type CooldownError struct {
	RetryAfterHours int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("you can spin again after %d hour(s)", e.RetryAfterHours)
}

type ServiceWheel struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
	rs         *redsync.Redsync
	loc        *time.Location

	serviceConfig *ServiceConfig
	serviceClaim  *ServiceClaim

	chooser *weightedrand.Chooser[int, int]
	now     func() time.Time
}

func NewServiceWheel(container *do.Injector) (*ServiceWheel, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	rs, err := do.Invoke[*redsync.Redsync](container)
	if err != nil {
		return nil, err
	}

	loc, err := do.InvokeNamed[*time.Location](container, "draw-location")
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceClaim, err := do.Invoke[*ServiceClaim](container)
	if err != nil {
		return nil, err
	}

	chooser, err := newSectorChooser()
	if err != nil {
		return nil, err
	}

	return &ServiceWheel{container, postgresDB, cache, rs, loc, serviceConfig, serviceClaim, chooser, time.Now}, nil
}

func newSectorChooser() (*weightedrand.Chooser[int, int], error) {
	choices := make([]weightedrand.Choice[int, int], 0, len(models.WheelSectors))
	for i := range models.WheelSectors {
		choices = append(choices, weightedrand.NewChoice(i, 1))
	}
	return weightedrand.NewChooser(choices...)
}

// Spin runs one gated wheel action for the user. The per-identity lock is
// best effort; the (identity, claim_date) unique index on gift_claim is the
// real backstop against duplicate same-day qualification.
func (service *ServiceWheel) Spin(ctx context.Context, user *models.User) (*models.SpinOutcome, error) {
	if service.rs != nil {
		mutex := service.rs.NewMutex(LockKeyIdentitySpin(user.Code))
		if err := mutex.TryLock(); err != nil {
			return nil, errorx.Wrap(ErrSpinLocked, errorx.Invalid)
		}
		//nolint:errcheck
		defer mutex.Unlock()
	}

	last, err := datastore.LatestSpinByIdentity(ctx, service.postgresDB, user.Code)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	cooldownHours, _ := service.serviceConfig.GetIntConfig(ctx, CONFIG_SPIN_COOLDOWN_HOURS, DEFAULT_SPIN_COOLDOWN_HOURS)
	window := time.Duration(cooldownHours) * time.Hour

	if last != nil {
		elapsed := service.now().Sub(last.ExecutedAt)
		if elapsed < window {
			left := int(math.Ceil((window - elapsed).Hours()))
			if left < 1 {
				left = 1
			}
			return nil, &CooldownError{RetryAfterHours: left}
		}
	}

	sector := service.chooser.Pick()
	result := models.WheelSectors[sector]

	// tag the record with the instant of execution, not of the original
	// request, so processing delay cannot shrink the window
	executedAt := service.now()

	spin := &models.Spin{
		Identity:    user.Code,
		Result:      result,
		SectorIndex: sector,
		ExecutedAt:  executedAt,
	}
	if err := datastore.InsertSpin(ctx, service.postgresDB, spin); err != nil {
		return nil, err
	}

	if err := datastore.SetUserLastSpin(ctx, service.postgresDB, user.ID, executedAt); err != nil {
		log.Warn().Err(err).Str("identity", user.Code).Msg("unable to update last spin instant")
	}
	//nolint:errcheck
	service.cache.Delete(ctx, DBKeyUser(user.ID))

	outcome := &models.SpinOutcome{Result: result, SectorIndex: sector}

	if result == models.SectorGift {
		day := pkg.DayString(executedAt, service.loc)
		claim, recorded, err := service.serviceClaim.Record(ctx, user.Code, day, models.ClaimSourceWheel, "", false)
		if err != nil {
			return nil, err
		}

		outcome.Claim = claim
		outcome.AlreadyClaimedToday = !recorded
	}

	return outcome, nil
}
