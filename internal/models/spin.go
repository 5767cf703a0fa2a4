package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	SectorTry  = "TRY"
	SectorGift = "GIFT"
)

// WheelSectors is the wheel layout the client animates against. The index
// returned by a spin points into this slice.
var WheelSectors = []string{
	SectorTry, SectorTry, SectorTry, SectorTry,
	SectorTry, SectorTry, SectorTry, SectorGift,
}

type Spin struct {
	bun.BaseModel `bun:"table:spin"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Identity      string    `bun:"identity,notnull" json:"identity"`
	Result        string    `bun:"result,notnull" json:"result"`
	SectorIndex   int       `bun:"sector_index" json:"sector_index"`
	ExecutedAt    time.Time `bun:"executed_at,notnull" json:"executed_at"`
}

type SpinOutcome struct {
	Result              string     `json:"result"`
	SectorIndex         int        `json:"sector_index"`
	Claim               *GiftClaim `json:"claim,omitempty"`
	AlreadyClaimedToday bool       `json:"already_claimed_today,omitempty"`
}
