package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"
)

type MaintenanceService struct {
	DB        *sql.DB
	Now       func() time.Time
	RequestID string
}

func (s MaintenanceService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s MaintenanceService) records() repositories.MaintenanceRepository {
	return repositories.MaintenanceRepository{DB: s.db()}
}

// Create records a maintenance event. Drivers always record against
// themselves; admins must name the driver.
func (s MaintenanceService) Create(ctx context.Context, rc domain.RequestContext, p models.MaintenancePayload) (models.Maintenance, error) {
	m := models.Maintenance{PaymentMode: "Cash"}
	if rc.IsDriver() {
		self := rc.UserID
		p.DriverID = &self
	}
	switch {
	case p.Date == nil || strings.TrimSpace(*p.Date) == "":
		return m, domain.ValidationError{Field: "date", Msg: "required"}
	case p.MaintenanceType == nil || strings.TrimSpace(*p.MaintenanceType) == "":
		return m, domain.ValidationError{Field: "maintenanceType", Msg: "required"}
	case p.MaintenanceCost == nil:
		return m, domain.ValidationError{Field: "maintenanceCost", Msg: "required"}
	case p.VehicleID == nil:
		return m, domain.ValidationError{Field: "vehicleId", Msg: "required"}
	case p.KmAtMaintenance == nil:
		return m, domain.ValidationError{Field: "kmAtMaintenance", Msg: "required"}
	case p.OriginalOdometerKm == nil:
		return m, domain.ValidationError{Field: "originalOdometerKm", Msg: "required"}
	case p.DriverID == nil:
		return m, domain.ValidationError{Field: "driverId", Msg: "required"}
	}
	if err := applyMaintenancePayload(&m, p); err != nil {
		return m, err
	}
	if err := s.snapshot(ctx, &m, p.DriverID, p.VehicleID); err != nil {
		return m, err
	}

	id, err := s.records().Insert(ctx, m)
	if err != nil {
		return models.Maintenance{}, err
	}
	now := s.now()
	m.ID, m.CreatedAt, m.UpdatedAt = id, now, now
	utils.LogEvent(s.RequestID, "maintenance", "create", "maintenance recorded", "maintenance_id", id, "driver_id", m.DriverID)
	return m, nil
}

func (s MaintenanceService) List(ctx context.Context, rc domain.RequestContext) ([]models.Maintenance, error) {
	return s.records().List(ctx, rc.DriverScope())
}

func (s MaintenanceService) Get(ctx context.Context, rc domain.RequestContext, id int64) (models.Maintenance, error) {
	m, err := s.records().GetByID(ctx, id)
	if err != nil {
		return m, err
	}
	if !rc.IsAdmin() && m.DriverID != rc.UserID {
		return models.Maintenance{}, domain.ForbiddenError{}
	}
	return m, nil
}

// Update keeps the snapshots unless the record is pointed at another driver or vehicle.
func (s MaintenanceService) Update(ctx context.Context, rc domain.RequestContext, id int64, p models.MaintenancePayload) (models.Maintenance, error) {
	m, err := s.Get(ctx, rc, id)
	if err != nil {
		return m, err
	}
	if rc.IsDriver() && p.DriverID != nil && *p.DriverID != rc.UserID {
		return models.Maintenance{}, domain.ForbiddenError{Msg: "drivers cannot reassign maintenance"}
	}
	if err := applyMaintenancePayload(&m, p); err != nil {
		return models.Maintenance{}, err
	}
	var driverID, vehicleID *int64
	if p.DriverID != nil && *p.DriverID != m.DriverID {
		driverID = p.DriverID
	}
	if p.VehicleID != nil && *p.VehicleID != m.VehicleID {
		vehicleID = p.VehicleID
	}
	if err := s.snapshot(ctx, &m, driverID, vehicleID); err != nil {
		return models.Maintenance{}, err
	}
	if err := s.records().Update(ctx, m); err != nil {
		return models.Maintenance{}, err
	}
	m.UpdatedAt = s.now()
	utils.LogEvent(s.RequestID, "maintenance", "update", "maintenance updated", "maintenance_id", id)
	return m, nil
}

func (s MaintenanceService) Delete(ctx context.Context, rc domain.RequestContext, id int64) error {
	if _, err := s.Get(ctx, rc, id); err != nil {
		return err
	}
	if err := s.records().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "maintenance", "delete", "maintenance deleted", "maintenance_id", id)
	return nil
}

func (s MaintenanceService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s MaintenanceService) snapshot(ctx context.Context, m *models.Maintenance, driverID, vehicleID *int64) error {
	if driverID != nil {
		d, err := repositories.DriverRepository{DB: s.db()}.GetByID(ctx, *driverID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.ValidationError{Field: "driverId", Msg: "Invalid driverId", Err: err}
			}
			return err
		}
		m.DriverID, m.DriverName, m.DriverPhone = d.ID, d.Name, d.Phone
	}
	if vehicleID != nil {
		v, err := repositories.VehicleRepository{DB: s.db()}.GetByID(ctx, *vehicleID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.ValidationError{Field: "vehicleId", Msg: "Invalid vehicleId", Err: err}
			}
			return err
		}
		m.VehicleID, m.VehicleNumber = v.ID, strings.ToUpper(v.VehicleNumber)
	}
	return nil
}

func applyMaintenancePayload(m *models.Maintenance, p models.MaintenancePayload) error {
	if p.Date != nil {
		d, err := utils.ParseTimestamp(*p.Date)
		if err != nil {
			return domain.ValidationError{Field: "date", Msg: "invalid date", Err: err}
		}
		m.Date = d
	}
	setString(&m.MaintenanceType, p.MaintenanceType)
	setString(&m.Company, p.Company)
	setString(&m.Description, p.Description)
	for _, f := range []struct {
		name string
		dst  *float64
		src  *float64
	}{
		{"maintenanceCost", &m.MaintenanceCost, p.MaintenanceCost},
		{"kmAtMaintenance", &m.KmAtMaintenance, p.KmAtMaintenance},
		{"originalOdometerKm", &m.OriginalOdometerKm, p.OriginalOdometerKm},
	} {
		if f.src == nil {
			continue
		}
		if *f.src < 0 {
			return domain.ValidationError{Field: f.name, Msg: "must not be negative"}
		}
		*f.dst = *f.src
	}
	if p.NextOilChangeKm != nil {
		v := *p.NextOilChangeKm
		m.NextOilChangeKm = &v
	}
	if p.PaymentMode != nil {
		v := strings.TrimSpace(*p.PaymentMode)
		if !utils.OneOf(v, models.MaintenancePaymentModes) {
			return domain.ValidationError{Field: "paymentMode", Msg: "must be one of " + strings.Join(models.MaintenancePaymentModes, ", ")}
		}
		m.PaymentMode = v
	}
	return nil
}
