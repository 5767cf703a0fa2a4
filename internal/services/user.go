package services

import (
	"context"
	"time"

	"luckywheel/internal/datastore"
	"luckywheel/internal/interfaces"
	"luckywheel/internal/models"
	"luckywheel/internal/pkg/caching"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/limiter"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type ServiceUser struct {
	container  *do.Injector
	postgresDB *bun.DB
	cache      caching.Cache
	limiter    interfaces.Limiter

	serviceCodes   *ServiceCodes
	authentication *Authentication
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	postgresDB, err := do.Invoke[*bun.DB](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	lim, err := do.Invoke[interfaces.Limiter](container)
	if err != nil {
		return nil, err
	}

	serviceCodes, err := do.Invoke[*ServiceCodes](container)
	if err != nil {
		return nil, err
	}

	authentication, err := do.Invoke[*Authentication](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, postgresDB, cache, lim, serviceCodes, authentication}, nil
}

// Register creates an account from a password alone; the participant code is
// the login handle. Issuance retries when the insert loses the code
// uniqueness race to a concurrent registration.
func (service *ServiceUser) Register(ctx context.Context, ip string, password string) (*models.User, string, error) {
	err := service.limiter.Allow(ctx, LimitKeyRegister(ip), redis_rate.PerMinute(REGISTER_RATE_LIMIT_PER_MINUTE))
	if err != nil {
		if err.Error() == limiter.ErrRateLimited.Error() {
			return nil, "", errorx.Wrap(err, errorx.RateLimiting)
		}
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	for i := 0; i < CODE_ISSUE_ATTEMPTS; i++ {
		code, err := service.serviceCodes.Issue(ctx, NamespaceParticipant)
		if err != nil {
			return nil, "", err
		}

		user := &models.User{
			Code:         code,
			PasswordHash: string(hash),
			CreatedAt:    time.Now(),
		}

		created, err := datastore.CreateUser(ctx, service.postgresDB, user)
		if err != nil {
			return nil, "", err
		}

		if !created {
			// another registration took this code between the pre-check and
			// the insert
			continue
		}

		token, err := service.authentication.CreateToken(user)
		if err != nil {
			return nil, "", err
		}

		return user, token, nil
	}

	return nil, "", ErrCodeSpaceExhausted
}

func (service *ServiceUser) Login(ctx context.Context, code string, password string) (*models.User, string, error) {
	user, err := datastore.FindUserByCode(ctx, service.postgresDB, code)
	if err != nil {
		return nil, "", errorx.Wrap(ErrInvalidCredentials, errorx.Authn)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errorx.Wrap(ErrInvalidCredentials, errorx.Authn)
	}

	token, err := service.authentication.CreateToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (service *ServiceUser) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	callback := func() (*models.User, error) {
		return datastore.FindUserByID(ctx, service.postgresDB, userID)
	}

	return caching.UseCache(ctx, service.cache, DBKeyUser(userID), CACHE_TTL_1_MIN, callback)
}

func (service *ServiceUser) ClearUserCache(ctx context.Context, userID int64) error {
	return service.cache.Delete(ctx, DBKeyUser(userID))
}
