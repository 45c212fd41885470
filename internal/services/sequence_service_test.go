package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestFormatBookingID(t *testing.T) {
	cases := []struct {
		seq  int64
		want string
	}{
		{1, "20250115001"},
		{42, "20250115042"},
		{999, "20250115999"},
		{1000, "202501151000"},
	}
	for _, c := range cases {
		if got := FormatBookingID("20250115", c.seq); got != c.want {
			t.Fatalf("FormatBookingID(%d) = %q, want %q", c.seq, got, c.want)
		}
	}
}

func TestFormatInvoiceNumber(t *testing.T) {
	if got := FormatInvoiceNumber(1); got != "INV000001" {
		t.Fatalf("unexpected invoice number %q", got)
	}
	if got := FormatInvoiceNumber(1234567); got != "INV1234567" {
		t.Fatalf("unexpected invoice number %q", got)
	}
}

func TestAllocateBookingIDUsesUTCDay(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// 01:00 in IST on the 16th is still the 15th in UTC.
	ist := time.FixedZone("IST", 19800)
	now := time.Date(2025, 1, 16, 1, 0, 0, 0, ist)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO booking_counters").WithArgs("20250115").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT seq FROM booking_counters").WithArgs("20250115").
		WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(3))
	mock.ExpectCommit()

	svc := SequenceService{DB: db, Now: func() time.Time { return now }}
	id, err := svc.AllocateBookingID(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "20250115003" {
		t.Fatalf("expected 20250115003, got %s", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAllocateBookingIDSequential(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	for seq := 1; seq <= 2; seq++ {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO booking_counters").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT seq FROM booking_counters").
			WillReturnRows(sqlmock.NewRows([]string{"seq"}).AddRow(seq))
		mock.ExpectCommit()
	}

	svc := SequenceService{DB: db, Now: clock}
	first, err := svc.AllocateBookingID(context.Background())
	if err != nil {
		t.Fatalf("first allocation: %v", err)
	}
	second, err := svc.AllocateBookingID(context.Background())
	if err != nil {
		t.Fatalf("second allocation: %v", err)
	}
	if first != "20250115001" || second != "20250115002" {
		t.Fatalf("unexpected ids %s, %s", first, second)
	}
	if first >= second {
		t.Fatalf("ids must increase: %s then %s", first, second)
	}
}
