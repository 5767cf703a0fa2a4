package datastore

import (
	"context"

	"luckywheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableDailyWinner(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.DailyWinner)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.DailyWinner)(nil)).Index("index_daily_winner_draw_date").IfNotExists().Unique().Column("draw_date").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// InsertDailyWinner writes the winner row unless the day already has one. A
// false return means a concurrent selection won the draw_date constraint; the
// caller re-reads the existing row.
func InsertDailyWinner(ctx context.Context, db *bun.DB, winner *models.DailyWinner) (bool, error) {
	res, err := db.NewInsert().Model(winner).On("CONFLICT (draw_date) DO NOTHING").Exec(ctx)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func GetWinnerByDay(ctx context.Context, db *bun.DB, day string) (*models.DailyWinner, error) {
	var winner models.DailyWinner
	err := db.NewSelect().Model(&winner).Where("draw_date = ?", day).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &winner, nil
}

func LatestWinner(ctx context.Context, db *bun.DB) (*models.DailyWinner, error) {
	var winner models.DailyWinner
	err := db.NewSelect().Model(&winner).Order("draw_date DESC").Limit(1).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &winner, nil
}
