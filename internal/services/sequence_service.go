package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"
)

const invoiceSequence = "invoice"

// SequenceService hands out booking ids and invoice numbers.
type SequenceService struct {
	DB  *sql.DB
	Now func() time.Time
}

func (s SequenceService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s SequenceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// AllocateBookingID reserves the next booking id for today in its own transaction.
func (s SequenceService) AllocateBookingID(ctx context.Context) (string, error) {
	var id string
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		var err error
		id, err = NextBookingID(ctx, tx, s.now())
		return err
	})
	return id, err
}

// NextBookingID increments the counter for now's UTC day. q should be the
// transaction that also stores the trip.
func NextBookingID(ctx context.Context, q intdb.DBTX, now time.Time) (string, error) {
	key := utils.DateKey(now)
	seq, err := repositories.CounterRepository{DB: q}.NextBookingSeq(ctx, key)
	if err != nil {
		return "", err
	}
	return FormatBookingID(key, seq), nil
}

// NextInvoiceNumber increments the global invoice counter on q. When q is
// rolled back the number is released.
func NextInvoiceNumber(ctx context.Context, q intdb.DBTX) (string, error) {
	seq, err := repositories.CounterRepository{DB: q}.NextSequence(ctx, invoiceSequence)
	if err != nil {
		return "", err
	}
	return FormatInvoiceNumber(seq), nil
}

// FormatBookingID pads to three digits; seq >= 1000 prints in full.
func FormatBookingID(dateKey string, seq int64) string {
	return fmt.Sprintf("%s%03d", dateKey, seq)
}

func FormatInvoiceNumber(seq int64) string {
	return fmt.Sprintf("INV%06d", seq)
}
