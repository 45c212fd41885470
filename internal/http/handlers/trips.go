package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/http/middleware"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/services"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

func tripService(c *gin.Context) services.TripService {
	return services.TripService{RequestID: middleware.GetRequestID(c)}
}

// tripFilterFromQuery reads the list filters. A bare `to` date covers the whole day.
func tripFilterFromQuery(c *gin.Context) (repositories.TripFilter, error) {
	f := repositories.TripFilter{
		VehicleNumber: c.Query("vehicleNumber"),
		BookingID:     c.Query("bookingId"),
		Search:        c.Query("search"),
		DateField:     strings.TrimSpace(c.Query("dateField")),
		Sort:          strings.TrimSpace(c.Query("sort")),
	}
	switch {
	case queryBool(c, "onlyDeleted"):
		f.Deleted = repositories.DeletedOnly
	case queryBool(c, "includeDeleted"):
		f.Deleted = repositories.DeletedInclude
	}

	var err error
	if f.DriverID, err = queryInt64(c, "driverId"); err != nil {
		return f, err
	}
	if f.VehicleID, err = queryInt64(c, "vehicleId"); err != nil {
		return f, err
	}
	if f.From, err = queryTime(c, "from", false); err != nil {
		return f, err
	}
	if f.To, err = queryTime(c, "to", true); err != nil {
		return f, err
	}
	return f, nil
}

func queryTime(c *gin.Context, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if d, err := utils.ParseDate(raw); err == nil {
		if endOfDay {
			d = d.Add(24*time.Hour - time.Nanosecond)
		}
		return &d, nil
	}
	t, err := utils.ParseTimestamp(raw)
	if err != nil {
		return nil, domain.ValidationError{Field: key, Msg: "invalid date", Err: err}
	}
	return &t, nil
}

// GET /api/trips
func GetTrips(c *gin.Context) {
	f, err := tripFilterFromQuery(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	trips, err := tripService(c).List(c.Request.Context(), middleware.CurrentUser(c), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]domain.TripWithCalc, 0, len(trips))
	for _, t := range trips {
		out = append(out, domain.WithCalc(t))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/trips/stats?month=YYYY-MM
func GetTripStats(c *gin.Context) {
	stats, err := services.StatsService{}.Aggregate(c.Request.Context(), middleware.CurrentUser(c), c.Query("month"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := tripService(c).Get(c.Request.Context(), middleware.CurrentUser(c), id, queryBool(c, "includeDeleted"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// GET /api/trips/:id/financials
func GetTripFinancials(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	fin, err := tripService(c).Financials(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, fin)
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var p models.TripPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	t, err := tripService(c).Create(c.Request.Context(), middleware.CurrentUser(c), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, domain.WithCalc(t))
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p models.TripPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	t, err := tripService(c).Update(c.Request.Context(), middleware.CurrentUser(c), id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain.WithCalc(t))
}

// DELETE /api/trips/:id?hard=true
func DeleteTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	res, err := tripService(c).Delete(c.Request.Context(), middleware.CurrentUser(c), id, queryBool(c, "hard"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PATCH /api/trips/:id/restore
func RestoreTrip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := tripService(c).Restore(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip restored", "trip": domain.WithCalc(t)})
}

// GET /api/trips/:id/whatsapp?sendTo=customer|driver
func GetTripWhatsAppLink(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	link, err := tripService(c).WhatsAppLink(c.Request.Context(), middleware.CurrentUser(c), id, c.DefaultQuery("sendTo", "customer"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": link})
}
