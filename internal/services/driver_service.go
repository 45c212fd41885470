package services

import (
	"context"
	"database/sql"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"
)

type DriverService struct {
	DB        *sql.DB
	RequestID string
}

func (s DriverService) drivers() repositories.DriverRepository {
	if s.DB != nil {
		return repositories.DriverRepository{DB: s.DB}
	}
	return repositories.DriverRepository{DB: intconfig.DB}
}

func (s DriverService) Create(ctx context.Context, p models.DriverPayload) (models.Driver, error) {
	d := models.Driver{
		Name:     utils.NormalizeSpace(utils.TrimOrEmpty(p.Name)),
		Email:    normalizeEmail(utils.TrimOrEmpty(p.Email)),
		Phone:    utils.TrimOrEmpty(p.Phone),
		Role:     domain.RoleDriver,
		IsActive: true,
	}
	if p.IsActive != nil {
		d.IsActive = *p.IsActive
	}
	password := ""
	if p.Password != nil {
		password = *p.Password
	}
	if err := validateAccount(d.Name, d.Email, password); err != nil {
		return models.Driver{}, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return models.Driver{}, err
	}
	d.PasswordHash = hash

	id, err := s.drivers().Insert(ctx, d)
	if err != nil {
		return models.Driver{}, driverWriteError(err)
	}
	d.ID = id
	utils.LogEvent(s.RequestID, "drivers", "create", "driver created", "driver_id", id)
	return d, nil
}

func (s DriverService) List(ctx context.Context) ([]models.Driver, error) {
	return s.drivers().List(ctx)
}

// Get is allowed for admins and for the driver themself.
func (s DriverService) Get(ctx context.Context, rc domain.RequestContext, id int64) (models.Driver, error) {
	if !rc.IsAdmin() && rc.UserID != id {
		return models.Driver{}, domain.ForbiddenError{}
	}
	return s.drivers().GetByID(ctx, id)
}

// Update applies provided fields. An empty password keeps the current hash.
func (s DriverService) Update(ctx context.Context, id int64, p models.DriverPayload) (models.Driver, error) {
	repo := s.drivers()
	d, err := repo.GetByID(ctx, id)
	if err != nil {
		return d, err
	}
	if p.Name != nil {
		d.Name = utils.NormalizeSpace(*p.Name)
	}
	if p.Email != nil {
		d.Email = normalizeEmail(*p.Email)
	}
	if p.Phone != nil {
		d.Phone = utils.TrimOrEmpty(p.Phone)
	}
	if p.IsActive != nil {
		d.IsActive = *p.IsActive
	}
	password := ""
	if p.Password != nil {
		password = *p.Password
	}
	if err := validateIdentity(d.Name, d.Email); err != nil {
		return models.Driver{}, err
	}
	if password != "" {
		if len(password) < minPasswordLen {
			return models.Driver{}, domain.ValidationError{Field: "password", Msg: "Password min 6 chars"}
		}
		if d.PasswordHash, err = hashPassword(password); err != nil {
			return models.Driver{}, err
		}
	}
	if err := repo.Update(ctx, d); err != nil {
		return models.Driver{}, driverWriteError(err)
	}
	utils.LogEvent(s.RequestID, "drivers", "update", "driver updated", "driver_id", id)
	return d, nil
}

func (s DriverService) Delete(ctx context.Context, id int64) error {
	if err := s.drivers().Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "drivers", "delete", "driver deleted", "driver_id", id)
	return nil
}

func driverWriteError(err error) error {
	if intdb.IsDuplicateKey(err) {
		return domain.ConflictError{Resource: "driver", Msg: "email already registered", Err: err}
	}
	return err
}
