package repositories

import (
	"context"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
)

// CounterRepository increments persisted counters with the store's atomic
// upsert. Callers must run it on a *sql.Tx: the upsert keeps the counter row
// locked until commit, so the read-back sees this caller's increment only.
type CounterRepository struct {
	DB intdb.DBTX
}

func (r CounterRepository) db() intdb.DBTX {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// NextBookingSeq bumps the per-day booking counter and returns the new value.
func (r CounterRepository) NextBookingSeq(ctx context.Context, dateKey string) (int64, error) {
	if _, err := r.db().ExecContext(ctx, `
		INSERT INTO booking_counters (date_key, seq) VALUES (?, 1)
		ON DUPLICATE KEY UPDATE seq = seq + 1
	`, dateKey); err != nil {
		return 0, err
	}
	var seq int64
	err := r.db().QueryRowContext(ctx, `SELECT seq FROM booking_counters WHERE date_key=?`, dateKey).Scan(&seq)
	return seq, err
}

// NextSequence bumps a named global counter and returns the new value.
func (r CounterRepository) NextSequence(ctx context.Context, name string) (int64, error) {
	if _, err := r.db().ExecContext(ctx, `
		INSERT INTO sequences (name, value) VALUES (?, 1)
		ON DUPLICATE KEY UPDATE value = value + 1
	`, name); err != nil {
		return 0, err
	}
	var v int64
	err := r.db().QueryRowContext(ctx, `SELECT value FROM sequences WHERE name=?`, name).Scan(&v)
	return v, err
}
