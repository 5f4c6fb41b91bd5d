package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when no row matches. Tenant-filtered lookups
	// return it for rows that exist in another tenant as well, so callers
	// cannot distinguish the two cases.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned on unique constraint violations (email, username).
	ErrDuplicate = errors.New("duplicate value")
)

const uniqueViolationCode = "23505"

// mapError translates pgx errors into repository sentinels.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return ErrDuplicate
	}
	return err
}
