package services

import (
	"context"
	"time"

	"luckywheel/internal/datastore"
	"luckywheel/internal/interfaces"
	"luckywheel/internal/models"
	"luckywheel/internal/pkg"

	"github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/limiter"
	"github.com/rs/zerolog/log"
	"github.com/samber/do"
	"github.com/uptrace/bun"
)

type ServiceClaim struct {
	container  *do.Injector
	postgresDB *bun.DB
	limiter    interfaces.Limiter
	loc        *time.Location

	serviceCodes *ServiceCodes

	now func() time.Time
}

func NewServiceClaim(container *do.Injector) (*ServiceClaim, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	lim, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	loc, err := do.InvokeNamed[*time.Location](container, "draw-location")
	if err != nil {
		return nil, err
	}

	serviceCodes, err := do.Invoke[*ServiceCodes](container)
	if err != nil {
		return nil, err
	}

	return &ServiceClaim{container, postgresDB, lim, loc, serviceCodes, time.Now}, nil
}

// Record books one qualifying claim for (identity, day). The insert is the
// synchronization point: losing the (identity, claim_date) constraint returns
// the existing claim with recorded=false. A code minted for a claim that then
// loses that race is discarded; codes are cheap and the namespace is large.
func (service *ServiceClaim) Record(ctx context.Context, identity string, day string, source string, email string, withCode bool) (*models.GiftClaim, bool, error) {
	for i := 0; i < CODE_ISSUE_ATTEMPTS; i++ {
		code := ""
		if withCode {
			issued, err := service.serviceCodes.Issue(ctx, NamespaceClaim)
			if err != nil {
				return nil, false, err
			}
			code = issued
		}

		claim := &models.GiftClaim{
			Identity:  identity,
			ClaimDate: day,
			Source:    source,
			Code:      code,
			Email:     email,
			CreatedAt: service.now(),
		}

		recorded, err := datastore.InsertGiftClaim(ctx, service.postgresDB, claim)
		if err != nil {
			if withCode && datastore.IsUniqueViolation(err) {
				// lost the code uniqueness race to a concurrent claim, redraw
				continue
			}
			return nil, false, err
		}

		if recorded {
			log.Info().Str("identity", identity).Str("day", day).Str("source", source).Msg("qualifying claim recorded")
			return claim, true, nil
		}

		existing, err := datastore.GiftClaimByIdentityAndDay(ctx, service.postgresDB, identity, day)
		if err != nil {
			return nil, false, err
		}

		return existing, false, nil
	}

	return nil, false, ErrCodeSpaceExhausted
}

// RegisterQuizWinner books a quiz-correct claim for an anonymous client. The
// device token is client-declared and unverified; the per-IP limiter is the
// only brake on token regeneration.
func (service *ServiceClaim) RegisterQuizWinner(ctx context.Context, ip string, deviceID string, email string) (*models.GiftClaim, bool, string, error) {
	err := service.limiter.Allow(ctx, LimitKeyQuizClaim(ip), redis_rate.PerMinute(QUIZ_CLAIM_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		if err.Error() == limiter.ErrRateLimited.Error() {
			return nil, false, "", errorx.Wrap(err, errorx.RateLimiting)
		}
		return nil, false, "", err
	}

	if deviceID == "" {
		deviceID = uuid.NewString()
	}

	day := pkg.DayString(service.now(), service.loc)
	claim, recorded, err := service.Record(ctx, deviceID, day, models.ClaimSourceQuiz, email, true)
	if err != nil {
		return nil, false, "", err
	}

	return claim, recorded, deviceID, nil
}

func (service *ServiceClaim) ClaimsByDay(ctx context.Context, day string) ([]*models.GiftClaim, error) {
	return datastore.GiftClaimsByDay(ctx, service.postgresDB, day)
}

// Today is the current calendar day in the configured draw time zone.
func (service *ServiceClaim) Today() string {
	return pkg.DayString(service.now(), service.loc)
}
