package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrSpinLocked = errors.New("spin in progress")
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrCodeSpaceExhausted means the issuer could not find a free code within the
// attempt cap; the namespace is effectively full.
var ErrCodeSpaceExhausted = errors.New("unable to generate unique code")

const (
	CONFIG_SERVER_MODE                 = "SERVER_MODE"
	CONFIG_SPIN_COOLDOWN_HOURS         = "SPIN_COOLDOWN_HOURS"
	CONFIG_CRONJOB_TIME_DRAW_PRIMARY   = "CRONJOB_TIME_DRAW_PRIMARY"
	CONFIG_CRONJOB_TIME_DRAW_SECONDARY = "CRONJOB_TIME_DRAW_SECONDARY"

	DEFAULT_SPIN_COOLDOWN_HOURS = 24

	// Two redundant firings of the same idempotent selection, shortly after
	// the local day rolls over.
	DEFAULT_CRONJOB_TIME_DRAW_PRIMARY   = "5 0 * * *"
	DEFAULT_CRONJOB_TIME_DRAW_SECONDARY = "30 0 * * *"

	CODE_ISSUE_ATTEMPTS = 10

	REGISTER_RATE_LIMIT_PER_MINUTE   = 10
	QUIZ_CLAIM_RATE_LIMIT_PER_MINUTE = 10

	CACHE_TTL_5_SECONDS = 5 * time.Second
	CACHE_TTL_1_MIN     = 1 * time.Minute
	CACHE_TTL_5_MINS    = 5 * time.Minute
)

func LockKeyIdentitySpin(identity string) string {
	return fmt.Sprintf("lock:spin:%s", identity)
}

// db
func DBKeyUser(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func DBKeyConfig(key string) string {
	return fmt.Sprintf("config:%s", strings.ToLower(key))
}

func DBKeyLatestWinner() string {
	return "winner:latest"
}

func LimitKeyRegister(ip string) string {
	return fmt.Sprintf("limit:register:%s", ip)
}

func LimitKeyQuizClaim(ip string) string {
	return fmt.Sprintf("limit:quiz-claim:%s", ip)
}
