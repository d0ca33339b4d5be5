package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

// ListOptions controls visibility and size of a resource listing.
type ListOptions struct {
	// IncludeHidden returns inactive and unpublished rows (admin reads).
	IncludeHidden bool
	// Limit caps the number of rows when positive.
	Limit int
}

func getOne(ctx context.Context, db *sqlx.DB, dest interface{}, query string, args ...interface{}) error {
	return db.GetContext(ctx, dest, db.Rebind(query), args...)
}

func selectAll(ctx context.Context, db *sqlx.DB, dest interface{}, query string, args ...interface{}) error {
	return db.SelectContext(ctx, dest, db.Rebind(query), args...)
}

func execQuery(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (sql.Result, error) {
	return db.ExecContext(ctx, db.Rebind(query), args...)
}

// deleteByID hard-deletes one row and reports ErrNotFound when nothing matched.
func deleteByID(ctx context.Context, db *sqlx.DB, table, id, notFound string) error {
	res, err := execQuery(ctx, db, "DELETE FROM "+table+" WHERE id = ?", id)
	if err != nil {
		return WrapError(err, "delete "+table)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return WrapError(err, "delete "+table)
	}
	if affected == 0 {
		return ErrNotFound(notFound)
	}
	return nil
}

func exists(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (bool, error) {
	var found bool
	if err := getOne(ctx, db, &found, "SELECT EXISTS("+query+")", args...); err != nil {
		return false, err
	}
	return found, nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound(msg)
	}
	return err
}

func withLimit(query string, args []interface{}, limit int) (string, []interface{}) {
	if limit > 0 {
		return query + "\nLIMIT ?", append(args, limit)
	}
	return query, args
}

// ParseLimit reads a ?limit= value; invalid or non-positive values mean no limit.
func ParseLimit(raw string) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0
	}
	return value
}

func now() time.Time {
	return time.Now().UTC()
}
