package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	ClaimSourceWheel = "wheel"
	ClaimSourceQuiz  = "quiz"
)

// GiftClaim is one qualifying entry for a day's draw. The (identity, claim_date)
// unique index is what actually enforces "one claim per identity per day".
type GiftClaim struct {
	bun.BaseModel `bun:"table:gift_claim"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Identity      string    `bun:"identity,notnull" json:"identity"`
	ClaimDate     string    `bun:"claim_date,notnull" json:"claim_date"`
	Source        string    `bun:"source,notnull" json:"source"`
	Code          string    `bun:"code,default:''" json:"code,omitempty"`
	Email         string    `bun:"email,default:''" json:"email,omitempty"`
	CreatedAt     time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}
