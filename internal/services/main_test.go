package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"luckywheel/internal/datastore"

	"github.com/go-redis/cache/v9"
	"github.com/go-redis/redis_rate/v10"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "modernc.org/sqlite"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// a single connection keeps every query on the same in-memory database
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		db.Close()
	})

	ctx := context.Background()
	if err := datastore.CreateTableUser(ctx, db); err != nil {
		t.Fatal(err)
	}
	if err := datastore.CreateTableSpin(ctx, db); err != nil {
		t.Fatal(err)
	}
	if err := datastore.CreateTableGiftClaim(ctx, db); err != nil {
		t.Fatal(err)
	}
	if err := datastore.CreateTableDailyWinner(ctx, db); err != nil {
		t.Fatal(err)
	}
	if err := datastore.CreateTableConfig(ctx, db); err != nil {
		t.Fatal(err)
	}

	return db
}

// missCache never holds anything, so every read goes to the store.
type missCache struct{}

func (missCache) Get(ctx context.Context, key string, target any) error {
	return cache.ErrCacheMiss
}

func (missCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (missCache) Delete(ctx context.Context, key string) error {
	return nil
}

type allowLimiter struct{}

func (allowLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) error {
	return nil
}

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) error {
	return errors.New("rate-limited")
}

func newTestServiceCodes(db *bun.DB) *ServiceCodes {
	return &ServiceCodes{nil, db, CODE_ISSUE_ATTEMPTS}
}

func newTestServiceConfig(db *bun.DB) *ServiceConfig {
	return &ServiceConfig{nil, db, missCache{}}
}

func newTestServiceClaim(db *bun.DB, now func() time.Time) *ServiceClaim {
	return &ServiceClaim{nil, db, allowLimiter{}, time.UTC, newTestServiceCodes(db), now}
}

func newTestServiceWheel(t *testing.T, db *bun.DB, now func() time.Time) *ServiceWheel {
	t.Helper()

	chooser, err := newSectorChooser()
	if err != nil {
		t.Fatal(err)
	}

	return &ServiceWheel{nil, db, missCache{}, nil, time.UTC, newTestServiceConfig(db), newTestServiceClaim(db, now), chooser, now}
}

func newTestServiceDraw(db *bun.DB, now func() time.Time) *ServiceDraw {
	return &ServiceDraw{nil, db, missCache{}, time.UTC, now}
}
