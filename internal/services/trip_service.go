package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"
)

var istZone = time.FixedZone("IST", 5*3600+30*60)

type TripService struct {
	DB        *sql.DB
	Now       func() time.Time
	RequestID string
}

// TripDeleteResult describes what Delete did.
type TripDeleteResult struct {
	Message string       `json:"message"`
	Trip    *models.Trip `json:"trip,omitempty"`
}

func (s TripService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s TripService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

func (s TripService) trips() repositories.TripRepository {
	return repositories.TripRepository{DB: s.db()}
}

// Create stores a trip and allocates its booking id in the same transaction.
func (s TripService) Create(ctx context.Context, rc domain.RequestContext, p models.TripPayload) (models.Trip, error) {
	t := models.Trip{
		PaymentMode:   "Cash",
		CreatedByRole: strings.ToLower(rc.Role),
		CreatedBy:     rc.UserID,
	}
	if rc.IsDriver() {
		self := rc.UserID
		p.DriverID = &self
	}
	if err := applyTripPayload(&t, p); err != nil {
		return t, err
	}

	now := s.now()
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		if err := attachTripRefs(ctx, tx, &t, p.DriverID, p.VehicleID); err != nil {
			return err
		}
		bookingID, err := NextBookingID(ctx, tx, now)
		if err != nil {
			return err
		}
		t.BookingID = bookingID

		id, err := repositories.TripRepository{DB: tx}.Insert(ctx, t)
		if err != nil {
			if intdb.IsDuplicateKey(err) {
				return domain.ConflictError{Resource: "trip", Msg: "booking id already exists", Err: err}
			}
			return err
		}
		t.ID = id
		return nil
	})
	if err != nil {
		return models.Trip{}, err
	}
	t.CreatedAt, t.UpdatedAt = now, now

	utils.LogEvent(s.RequestID, "trips", "create", "trip created",
		"trip_id", t.ID, "booking_id", t.BookingID, "role", t.CreatedByRole)
	return t, nil
}

// List applies the principal's scope on top of f.
func (s TripService) List(ctx context.Context, rc domain.RequestContext, f repositories.TripFilter) ([]models.Trip, error) {
	if scope := rc.DriverScope(); scope != nil {
		f.DriverID = scope
	}
	return s.trips().List(ctx, f)
}

func (s TripService) Get(ctx context.Context, rc domain.RequestContext, id int64, includeDeleted bool) (domain.TripWithCalc, error) {
	t, err := s.trips().GetByID(ctx, id)
	if err != nil {
		return domain.TripWithCalc{}, err
	}
	if err := checkTripOwner(rc, t); err != nil {
		return domain.TripWithCalc{}, err
	}
	if rc.IsDriver() && t.IsDriverDeleted && !includeDeleted {
		return domain.TripWithCalc{}, domain.NotFoundError{Resource: "trip"}
	}
	return domain.WithCalc(t), nil
}

// Financials returns the derived expense figures of one trip.
func (s TripService) Financials(ctx context.Context, rc domain.RequestContext, id int64) (domain.TripFinancials, error) {
	out, err := s.Get(ctx, rc, id, false)
	if err != nil {
		return domain.TripFinancials{}, err
	}
	return out.Calc, nil
}

// Update applies a partial payload. Audit and deletion fields are never
// writable through it; drivers may not reassign a trip to someone else.
func (s TripService) Update(ctx context.Context, rc domain.RequestContext, id int64, p models.TripPayload) (models.Trip, error) {
	var out models.Trip
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		repo := repositories.TripRepository{DB: tx}
		t, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := checkTripOwner(rc, t); err != nil {
			return err
		}
		if rc.IsDriver() && p.DriverID != nil && *p.DriverID != rc.UserID {
			return domain.ForbiddenError{Msg: "drivers cannot reassign trips"}
		}
		if err := applyTripPayload(&t, p); err != nil {
			return err
		}
		if err := attachTripRefs(ctx, tx, &t, p.DriverID, p.VehicleID); err != nil {
			return err
		}
		if err := repo.Update(ctx, t); err != nil {
			return err
		}
		t.UpdatedAt = s.now()
		out = t
		return nil
	})
	if err != nil {
		return models.Trip{}, err
	}
	utils.LogEvent(s.RequestID, "trips", "update", "trip updated", "trip_id", id)
	return out, nil
}

// Delete soft deletes for drivers (own trips, idempotent). Admins soft delete
// unless hard is set.
func (s TripService) Delete(ctx context.Context, rc domain.RequestContext, id int64, hard bool) (TripDeleteResult, error) {
	repo := s.trips()
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return TripDeleteResult{}, err
	}

	if rc.IsDriver() {
		if err := checkTripOwner(rc, t); err != nil {
			return TripDeleteResult{}, err
		}
		if !t.IsDriverDeleted {
			by := rc.UserID
			if err := s.markDeleted(ctx, &t, &by); err != nil {
				return TripDeleteResult{}, err
			}
		}
		return TripDeleteResult{Message: "Trip marked deleted by driver", Trip: &t}, nil
	}
	if !rc.IsAdmin() {
		return TripDeleteResult{}, domain.ForbiddenError{}
	}

	if hard {
		if err := repo.Delete(ctx, id); err != nil {
			return TripDeleteResult{}, err
		}
		utils.LogEvent(s.RequestID, "trips", "delete", "trip hard deleted", "trip_id", id)
		return TripDeleteResult{Message: "Trip permanently deleted by admin"}, nil
	}
	if !t.IsDriverDeleted {
		if err := s.markDeleted(ctx, &t, nil); err != nil {
			return TripDeleteResult{}, err
		}
	}
	return TripDeleteResult{Message: "Trip soft-deleted by admin", Trip: &t}, nil
}

func (s TripService) markDeleted(ctx context.Context, t *models.Trip, by *int64) error {
	at := s.now()
	if err := s.trips().SetDriverDeleted(ctx, t.ID, true, &at, by); err != nil {
		return err
	}
	t.IsDriverDeleted = true
	t.DriverDeletedAt = &at
	t.DriverDeletedBy = by
	utils.LogEvent(s.RequestID, "trips", "soft_delete", "trip soft deleted", "trip_id", t.ID)
	return nil
}

func (s TripService) Restore(ctx context.Context, rc domain.RequestContext, id int64) (models.Trip, error) {
	if !rc.IsAdmin() {
		return models.Trip{}, domain.ForbiddenError{Msg: "Admins only"}
	}
	repo := s.trips()
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return t, err
	}
	if err := repo.SetDriverDeleted(ctx, id, false, nil, nil); err != nil {
		return models.Trip{}, err
	}
	t.IsDriverDeleted = false
	t.DriverDeletedAt = nil
	t.DriverDeletedBy = nil
	utils.LogEvent(s.RequestID, "trips", "restore", "trip restored", "trip_id", id)
	return t, nil
}

// WhatsAppLink builds a wa.me share link with the trip summary for the
// customer or the driver.
func (s TripService) WhatsAppLink(ctx context.Context, rc domain.RequestContext, id int64, sendTo string) (string, error) {
	if !rc.IsAdmin() {
		return "", domain.ForbiddenError{Msg: "Admins only"}
	}
	t, err := s.trips().GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	var phone string
	switch sendTo {
	case "customer":
		if strings.TrimSpace(t.CustomerNumber) == "" {
			return "", domain.ValidationError{Field: "sendTo", Msg: "Customer number not available"}
		}
		phone = utils.DigitsOnly(t.CustomerNumber)
	case "driver":
		if strings.TrimSpace(t.DriverNumber) == "" {
			return "", domain.ValidationError{Field: "sendTo", Msg: "Driver number not available"}
		}
		phone = utils.DigitsOnly(t.DriverNumber)
	default:
		return "", domain.ValidationError{Field: "sendTo", Msg: `sendTo must be "customer" or "driver"`}
	}

	seats := "-"
	if t.VehicleID != nil {
		if v, err := (repositories.VehicleRepository{DB: s.db()}).GetByID(ctx, *t.VehicleID); err == nil {
			seats = fmt.Sprintf("%d", v.SeatingCapacity)
		}
	}
	return whatsAppURL(phone, tripMessage(t, seats)), nil
}

func whatsAppURL(phone, message string) string {
	return "https://wa.me/" + phone + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

func tripMessage(t models.Trip, seats string) string {
	pickup := "-"
	if t.StartDate != nil {
		pickup = t.StartDate.In(istZone).Format("02 Jan 2006, 3:04 pm")
	}
	cost := "-"
	if t.TripAmount != 0 {
		cost = "₹" + utils.FormatMoney(t.TripAmount)
	}
	lines := []string{
		"Trip details",
		"Booking Number: " + orDash(t.BookingID),
		"Pick-up Date: " + pickup,
		"From: " + orDash(t.FromLocation),
		"To: " + orDash(t.EndLocation),
		"Cost: " + cost,
		"Passenger name: " + orDash(t.CustomerName),
		"Passenger number: " + orDash(t.CustomerNumber),
		"Driver name: " + orDash(t.DriverName),
		"Phone number: " + orDash(t.DriverNumber),
		"Vehicle: " + orDash(t.VehicleType),
		"Seating capacity: " + seats,
		"Mode of Payment: " + orDash(t.PaymentMode),
	}
	return strings.Join(lines, "\n")
}

func orDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

func checkTripOwner(rc domain.RequestContext, t models.Trip) error {
	if rc.IsAdmin() {
		return nil
	}
	if !rc.IsDriver() || t.DriverID == nil || *t.DriverID != rc.UserID {
		return domain.ForbiddenError{}
	}
	return nil
}

// attachTripRefs copies the driver and vehicle snapshots onto t.
func attachTripRefs(ctx context.Context, q intdb.DBTX, t *models.Trip, driverID, vehicleID *int64) error {
	if driverID != nil {
		d, err := repositories.DriverRepository{DB: q}.GetByID(ctx, *driverID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.ValidationError{Field: "driverId", Msg: "Invalid driverId", Err: err}
			}
			return err
		}
		id := d.ID
		t.DriverID = &id
		t.DriverName = d.Name
		t.DriverNumber = d.Phone
	}
	if vehicleID != nil {
		v, err := repositories.VehicleRepository{DB: q}.GetByID(ctx, *vehicleID)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.ValidationError{Field: "vehicleId", Msg: "Invalid vehicleId", Err: err}
			}
			return err
		}
		id := v.ID
		t.VehicleID = &id
		t.VehicleType = v.VehicleType
		t.VehicleNumber = strings.ToUpper(v.VehicleNumber)
	}
	return nil
}

// applyTripPayload copies the provided fields onto t and recomputes the balance.
func applyTripPayload(t *models.Trip, p models.TripPayload) error {
	if p.BookingDate != nil {
		v := strings.TrimSpace(*p.BookingDate)
		if v != "" {
			d, err := utils.ParseTimestamp(v)
			if err != nil {
				return domain.ValidationError{Field: "bookingDate", Msg: "invalid date", Err: err}
			}
			v = utils.FormatDate(d)
		}
		t.BookingDate = v
	}
	setString(&t.TravelsName, p.TravelsName)
	setString(&t.CustomerName, p.CustomerName)
	setString(&t.CustomerNumber, p.CustomerNumber)
	setString(&t.FromLocation, p.FromLocation)
	setString(&t.EndLocation, p.EndLocation)
	setString(&t.TripAmountReceivedBy, p.TripAmountReceivedBy)
	setString(&t.Description, p.Description)

	var err error
	if t.StartDate, err = setTime("startDate", t.StartDate, p.StartDate); err != nil {
		return err
	}
	if t.EndDate, err = setTime("endDate", t.EndDate, p.EndDate); err != nil {
		return err
	}

	for _, f := range []struct {
		name string
		dst  *float64
		src  *float64
	}{
		{"startingReading", &t.StartingReading, p.StartingReading},
		{"endingReading", &t.EndingReading, p.EndingReading},
		{"tripAmount", &t.TripAmount, p.TripAmount},
		{"advanceAmount", &t.AdvanceAmount, p.AdvanceAmount},
		{"tolls", &t.Tolls, p.Tolls},
		{"parkingCharges", &t.ParkingCharges, p.ParkingCharges},
		{"driverBeta", &t.DriverBeta, p.DriverBeta},
	} {
		if f.src == nil {
			continue
		}
		if *f.src < 0 {
			return domain.ValidationError{Field: f.name, Msg: "must not be negative"}
		}
		*f.dst = *f.src
	}

	if p.PaymentMode != nil {
		v := strings.TrimSpace(*p.PaymentMode)
		if !utils.OneOf(v, models.TripPaymentModes) {
			return domain.ValidationError{Field: "paymentMode", Msg: "must be one of " + strings.Join(models.TripPaymentModes, ", ")}
		}
		t.PaymentMode = v
	}
	if p.FuelType != nil {
		v := strings.TrimSpace(*p.FuelType)
		if v != "" && !utils.OneOf(v, models.FuelTypes) {
			return domain.ValidationError{Field: "fuelType", Msg: "must be one of " + strings.Join(models.FuelTypes, ", ")}
		}
		t.FuelType = v
	}
	if p.FuelAmount != nil {
		v := strings.TrimSpace(p.FuelAmount.String())
		if v == "" {
			t.FuelAmount = nil
		} else {
			t.FuelAmount = &v
		}
	}

	t.BalanceAmount = domain.BalanceAmount(t.TripAmount, t.AdvanceAmount)
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func setTime(field string, cur *time.Time, src *string) (*time.Time, error) {
	if src == nil {
		return cur, nil
	}
	v := strings.TrimSpace(*src)
	if v == "" {
		return nil, nil
	}
	ts, err := utils.ParseTimestamp(v)
	if err != nil {
		return cur, domain.ValidationError{Field: field, Msg: "invalid date", Err: err}
	}
	return &ts, nil
}
