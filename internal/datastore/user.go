package datastore

import (
	"context"
	"time"

	"luckywheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_user_code").IfNotExists().Unique().Column("code").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// CreateUser inserts the user and reports whether the row was written. A false
// return means the code collided with an existing user; the caller re-issues a
// code and tries again.
func CreateUser(ctx context.Context, db *bun.DB, user *models.User) (bool, error) {
	res, err := db.NewInsert().Model(user).On("CONFLICT (code) DO NOTHING").Exec(ctx)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func FindUserByID(ctx context.Context, db *bun.DB, userID int64) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByCode(ctx context.Context, db *bun.DB, code string) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("code = ?", code).Scan(ctx)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CheckUserCodeExists(ctx context.Context, db *bun.DB, code string) (bool, error) {
	return db.NewSelect().Model((*models.User)(nil)).Where("code = ?", code).Exists(ctx)
}

func SetUserLastSpin(ctx context.Context, db *bun.DB, userID int64, at time.Time) error {
	_, err := db.NewUpdate().Model((*models.User)(nil)).
		Set("last_spin_at = ?", at).
		Where("id = ?", userID).Exec(ctx)
	return err
}
