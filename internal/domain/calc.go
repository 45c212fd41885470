package domain

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
)

var digitRun = regexp.MustCompile(`\d+`)

// TripFinancials is derived from a trip's stored fields on every read.
type TripFinancials struct {
	FuelCost      float64 `json:"fuelCost"`
	TotalExpenses float64 `json:"totalExpenses"`
	Profit        float64 `json:"profit"`
}

// TripWithCalc pairs a trip with its derived financials for responses.
type TripWithCalc struct {
	Trip models.Trip    `json:"trip"`
	Calc TripFinancials `json:"calc"`
}

// ParseFuelAmount reads the free-form fuel field. A value that is a single
// number is taken as is; anything else sums every run of digits in the text,
// so "Petrol: 120, CNG: 80" is 200. Digits that are not costs (dates, decimals
// inside text) are summed too.
// Only Go float syntax counts as a single number, so "0x10" is read as digit runs.
func ParseFuelAmount(raw *string) float64 {
	if raw == nil {
		return 0
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return v
	}

	var sum float64
	for _, run := range digitRun.FindAllString(s, -1) {
		v, err := strconv.ParseFloat(run, 64)
		if err != nil {
			continue
		}
		sum += v
	}
	return sum
}

// DeriveExpenses computes fuel cost, total expenses and profit. No rounding.
func DeriveExpenses(t models.Trip) TripFinancials {
	fuel := ParseFuelAmount(t.FuelAmount)
	total := fuel + t.Tolls + t.ParkingCharges + t.DriverBeta
	return TripFinancials{
		FuelCost:      fuel,
		TotalExpenses: total,
		Profit:        t.TripAmount - total,
	}
}

func WithCalc(t models.Trip) TripWithCalc {
	return TripWithCalc{Trip: t, Calc: DeriveExpenses(t)}
}

// BalanceAmount never goes below zero.
func BalanceAmount(tripAmount, advanceAmount float64) float64 {
	return math.Max(0, tripAmount-advanceAmount)
}
