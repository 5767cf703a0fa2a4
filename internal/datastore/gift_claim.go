package datastore

import (
	"context"

	"luckywheel/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableGiftClaim(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.GiftClaim)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GiftClaim)(nil)).Index("index_gift_claim_identity_date").IfNotExists().Unique().Column("identity", "claim_date").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GiftClaim)(nil)).Index("index_gift_claim_code").IfNotExists().Unique().Column("code").Where("code <> ''").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.GiftClaim)(nil)).Index("index_gift_claim_date").IfNotExists().Column("claim_date").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// InsertGiftClaim writes the claim unless the identity already has one for the
// day. The insert is the synchronization point; a false return means another
// call won the (identity, claim_date) constraint. A code collision surfaces as
// an error instead, see IsUniqueViolation.
func InsertGiftClaim(ctx context.Context, db *bun.DB, claim *models.GiftClaim) (bool, error) {
	res, err := db.NewInsert().Model(claim).On("CONFLICT (identity, claim_date) DO NOTHING").Exec(ctx)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows == 1, nil
}

func GiftClaimByIdentityAndDay(ctx context.Context, db *bun.DB, identity string, day string) (*models.GiftClaim, error) {
	var claim models.GiftClaim
	err := db.NewSelect().Model(&claim).
		Where("identity = ?", identity).
		Where("claim_date = ?", day).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &claim, nil
}

func GiftClaimsByDay(ctx context.Context, db *bun.DB, day string) ([]*models.GiftClaim, error) {
	var claims []*models.GiftClaim
	err := db.NewSelect().Model(&claims).Where("claim_date = ?", day).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return claims, nil
}

func CheckClaimCodeExists(ctx context.Context, db *bun.DB, code string) (bool, error) {
	return db.NewSelect().Model((*models.GiftClaim)(nil)).Where("code = ?", code).Exists(ctx)
}
