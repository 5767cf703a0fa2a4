package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:user"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id"`
	Code          string     `bun:"code,notnull" json:"code"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	CreatedAt     time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
	LastSpinAt    *time.Time `bun:"last_spin_at" json:"last_spin_at"`
}

// UserFromAuth only use in middleware
type UserFromAuth struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
}
