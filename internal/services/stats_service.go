package services

import (
	"context"
	"database/sql"
	"strings"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"

	"golang.org/x/sync/errgroup"
)

type StatsService struct {
	DB *sql.DB
}

func (s StatsService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Aggregate computes fleet totals for the principal. Trips are limited to the
// month (on start date) when one is given; maintenance is scoped to the
// driver only and ads are always fleet-wide.
func (s StatsService) Aggregate(ctx context.Context, rc domain.RequestContext, month string) (domain.FleetStats, error) {
	scope := rc.DriverScope()
	f := repositories.TripFilter{DriverID: scope}
	if month = strings.TrimSpace(month); month != "" {
		start, end, err := utils.MonthRange(month)
		if err != nil {
			return domain.FleetStats{}, domain.ValidationError{Field: "month", Msg: "must be YYYY-MM", Err: err}
		}
		f.StartFrom, f.StartBefore = &start, &end
	}

	var (
		trips []models.Trip
		costs []float64
		ads   []float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		trips, err = repositories.TripRepository{DB: s.db()}.List(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		costs, err = repositories.MaintenanceRepository{DB: s.db()}.Costs(gctx, scope)
		return err
	})
	g.Go(func() error {
		var err error
		ads, err = repositories.AdRepository{DB: s.db()}.Amounts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.FleetStats{}, err
	}
	return domain.AggregateFleet(trips, costs, ads), nil
}
