package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	DrawOutcomeChosen        = "chosen"
	DrawOutcomeAlreadyChosen = "already_chosen"
	DrawOutcomeNoQualifiers  = "no_qualifiers"
)

// DailyWinner holds at most one row per draw_date; the unique index on
// draw_date is the race guard for concurrent selections.
type DailyWinner struct {
	bun.BaseModel `bun:"table:daily_winner"`
	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	DrawDate      string    `bun:"draw_date,notnull" json:"draw_date"`
	Identity      string    `bun:"identity,notnull" json:"identity"`
	Code          string    `bun:"code,default:''" json:"code,omitempty"`
	PickedAt      time.Time `bun:"picked_at,default:current_timestamp" json:"picked_at"`
}

type DrawResult struct {
	Outcome string       `json:"outcome"`
	Winner  *DailyWinner `json:"winner,omitempty"`
}
