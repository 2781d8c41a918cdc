package dbtx

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go-school/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Conn returns a gorm handle bound to ctx that runs on tx when one is given,
// so repositories built on *gorm.DB can join a database/sql transaction.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db.WithContext(ctx)
	}
	session := db.Session(&gorm.Session{Context: ctx, NewDB: true})
	session.Statement.ConnPool = tx
	return session
}

const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgUniqueViolation      = "23505"
)

// IsConflict reports a commit conflict the caller may retry later.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "could not serialize access") || strings.Contains(msg, "deadlock detected")
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

// MapError turns storage errors into application errors where they have a
// meaning for the caller and leaves the rest untouched.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if IsConflict(err) {
		return apperror.ErrTransactionConflict.WithCause(err)
	}
	return err
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
