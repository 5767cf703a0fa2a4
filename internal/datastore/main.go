package datastore

import (
	"errors"
	"strings"

	"github.com/uptrace/bun/driver/pgdriver"
)

// IsUniqueViolation reports whether err is a uniqueness-constraint rejection
// from the store. Covers pgdriver (23505) and the sqlite driver used in tests.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
