package handlers

import (
	"net/http"

	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/http/middleware"
	"github.com/kaicharlakarun/nrk-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func driverService(c *gin.Context) services.DriverService {
	return services.DriverService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/drivers
func GetDrivers(c *gin.Context) {
	list, err := driverService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/drivers/me
func GetMyDriverProfile(c *gin.Context) {
	rc := middleware.CurrentUser(c)
	d, err := driverService(c).Get(c.Request.Context(), rc, rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// GET /api/drivers/:id
func GetDriverByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	d, err := driverService(c).Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var p models.DriverPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	d, err := driverService(c).Create(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PUT /api/drivers/:id
func UpdateDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p models.DriverPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	d, err := driverService(c).Update(c.Request.Context(), id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DELETE /api/drivers/:id
func DeleteDriver(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := driverService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Driver deleted"})
}
