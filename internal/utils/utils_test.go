package utils

import (
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2025-12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start got %v", start)
	}
	if !end.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("end got %v", end)
	}
	if _, _, err := MonthRange("2025-13"); err == nil {
		t.Fatalf("expected error for invalid month")
	}
	if _, _, err := MonthRange("12-2025"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestDateKeyUsesUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	local := time.Date(2025, 1, 15, 2, 0, 0, 0, ist)
	if got := DateKey(local); got != "20250114" {
		t.Fatalf("got %s", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("2025-01-15T10:30:00+05:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 5 || got.Minute() != 0 {
		t.Fatalf("expected UTC normalisation, got %v", got)
	}
	if _, err := ParseTimestamp("2025-01-15"); err != nil {
		t.Fatalf("bare date should parse: %v", err)
	}
	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFormatINR(t *testing.T) {
	cases := map[float64]string{
		0:         "₹0.00",
		950:       "₹950.00",
		1000:      "₹1,000.00",
		123456.5:  "₹1,23,456.50",
		-12345678: "-₹1,23,45,678.00",
	}
	for in, want := range cases {
		if got := FormatINR(Money(in)); got != want {
			t.Fatalf("FormatINR(%v) got %q want %q", in, got, want)
		}
	}
}

func TestGST(t *testing.T) {
	if got := GST(1999).String(); got != "99.95" {
		t.Fatalf("got %s", got)
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("+91 98765-43210"); got != "919876543210" {
		t.Fatalf("got %s", got)
	}
}
