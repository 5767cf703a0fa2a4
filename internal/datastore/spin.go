package datastore

import (
	"context"

	"luckywheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableSpin(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.Spin)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.Spin)(nil)).Index("index_spin_identity").IfNotExists().Column("identity").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func InsertSpin(ctx context.Context, db *bun.DB, spin *models.Spin) error {
	_, err := db.NewInsert().Model(spin).Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func LatestSpinByIdentity(ctx context.Context, db *bun.DB, identity string) (*models.Spin, error) {
	var spin models.Spin
	err := db.NewSelect().Model(&spin).
		Where("identity = ?", identity).
		Order("executed_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &spin, nil
}
