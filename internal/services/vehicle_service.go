package services

import (
	"context"
	"database/sql"
	"strings"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"
)

type VehicleService struct {
	DB        *sql.DB
	RequestID string
}

func (s VehicleService) vehicles() repositories.VehicleRepository {
	if s.DB != nil {
		return repositories.VehicleRepository{DB: s.DB}
	}
	return repositories.VehicleRepository{DB: intconfig.DB}
}

func (s VehicleService) Create(ctx context.Context, p models.VehiclePayload) (models.Vehicle, error) {
	var v models.Vehicle
	if err := applyVehiclePayload(&v, p, true); err != nil {
		return v, err
	}
	id, err := s.vehicles().Insert(ctx, v)
	if err != nil {
		return models.Vehicle{}, vehicleWriteError(err)
	}
	v.ID = id
	utils.LogEvent(s.RequestID, "vehicles", "create", "vehicle created", "vehicle_id", id)
	return v, nil
}

func (s VehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicles().List(ctx)
}

func (s VehicleService) Get(ctx context.Context, id int64) (models.Vehicle, error) {
	return s.vehicles().GetByID(ctx, id)
}

func (s VehicleService) Update(ctx context.Context, id int64, p models.VehiclePayload) (models.Vehicle, error) {
	repo := s.vehicles()
	v, err := repo.GetByID(ctx, id)
	if err != nil {
		return v, err
	}
	if err := applyVehiclePayload(&v, p, false); err != nil {
		return models.Vehicle{}, err
	}
	if err := repo.Update(ctx, v); err != nil {
		return models.Vehicle{}, vehicleWriteError(err)
	}
	utils.LogEvent(s.RequestID, "vehicles", "update", "vehicle updated", "vehicle_id", id)
	return v, nil
}

func (s VehicleService) Delete(ctx context.Context, id int64) error {
	if err := s.vehicles().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "vehicles", "delete", "vehicle deleted", "vehicle_id", id)
	return nil
}

func applyVehiclePayload(v *models.Vehicle, p models.VehiclePayload, create bool) error {
	if p.VehicleType != nil {
		v.VehicleType = utils.NormalizeSpace(*p.VehicleType)
	}
	if p.SeatingCapacity != nil {
		v.SeatingCapacity = *p.SeatingCapacity
	}
	if p.VehicleNumber != nil {
		v.VehicleNumber = strings.ToUpper(strings.Join(strings.Fields(*p.VehicleNumber), ""))
	}
	switch {
	case v.VehicleType == "":
		return domain.ValidationError{Field: "vehicleType", Msg: "required"}
	case v.VehicleNumber == "":
		return domain.ValidationError{Field: "vehicleNumber", Msg: "required"}
	case v.SeatingCapacity <= 0 && (create || p.SeatingCapacity != nil):
		return domain.ValidationError{Field: "seatingCapacity", Msg: "must be positive"}
	}
	return nil
}

func vehicleWriteError(err error) error {
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "vehicle", Msg: "vehicle number already exists", Err: err}
	}
	return err
}
