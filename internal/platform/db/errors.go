package db

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is the sentinel returned by repositories when a row does not
// exist. Handlers map it to 404; callers must never see a raw pgx.ErrNoRows.
var ErrNotFound = errors.New("not found")

// NotFoundOr maps pgx.ErrNoRows onto ErrNotFound and passes every other
// error through unchanged.
func NotFoundOr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

const (
	foreignKeyViolationCode = "23503"
	uniqueViolationCode     = "23505"
)

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign-key
// constraint violation, e.g. an insert referencing a deleted row.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation, e.g. a duplicate email.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
