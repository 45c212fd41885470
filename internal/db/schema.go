package db

import (
	"context"
	"database/sql"
	"errors"
)

// CoreTables must exist once migrations have run.
var CoreTables = []string{"admins", "drivers", "vehicles", "trips", "maintenances", "ads", "companies", "invoices", "booking_counters", "sequences"}

// HasTable reports whether table exists in the current schema.
func HasTable(ctx context.Context, q DBTX, table string) (bool, error) {
	var name string
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return name != "", nil
}

// MissingTables returns the tables from want that do not exist.
func MissingTables(ctx context.Context, q DBTX, want []string) ([]string, error) {
	missing := []string{}
	for _, t := range want {
		ok, err := HasTable(ctx, q, t)
		if err != nil {
			return nil, err
		}
		if !ok {
			missing = append(missing, t)
		}
	}
	return missing, nil
}
