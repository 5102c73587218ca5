package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yoockh/huffaz-portal/internal/utils"
	"gorm.io/gorm"
)

// SQLSTATE raised when a value cannot be cast to the column type, e.g. "abc"::uuid.
const codeInvalidTextRepresentation = "22P02"

// validIDs reports whether every id parses as a UUID. Lookups skip the
// round trip for anything else since no row can match it.
func validIDs(ids ...string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

// lookupErr maps a missing row or an id the database refused to cast to utils.ErrNotFound.
func lookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeInvalidTextRepresentation {
		return utils.ErrNotFound
	}
	return err
}
