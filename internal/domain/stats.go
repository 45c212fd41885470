package domain

import "github.com/kaicharlakarun/nrk-backend/internal/domain/models"

type FleetStats struct {
	TotalTrips       int     `json:"totalTrips"`
	TotalTripAmount  float64 `json:"totalTripAmount"`
	TotalExpenses    float64 `json:"totalExpenses"`
	TotalMaintenance float64 `json:"totalMaintenance"`
	TotalAds         float64 `json:"totalAds"`
	TotalProfit      float64 `json:"totalProfit"`
}

// AggregateFleet folds already-scoped trips, maintenance costs and ad amounts.
// Profit comes from the grand totals, not from summing per-trip profit.
func AggregateFleet(trips []models.Trip, maintenanceCosts, adAmounts []float64) FleetStats {
	out := FleetStats{TotalTrips: len(trips)}
	for _, t := range trips {
		out.TotalTripAmount += t.TripAmount
		out.TotalExpenses += DeriveExpenses(t).TotalExpenses
	}
	for _, c := range maintenanceCosts {
		out.TotalMaintenance += c
	}
	for _, a := range adAmounts {
		out.TotalAds += a
	}
	out.TotalExpenses += out.TotalMaintenance + out.TotalAds
	out.TotalProfit = out.TotalTripAmount - out.TotalExpenses
	return out
}
