package handlers

import (
	"net/http"

	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/http/middleware"
	"github.com/kaicharlakarun/nrk-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func maintenanceService(c *gin.Context) services.MaintenanceService {
	return services.MaintenanceService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/maintenance
func GetMaintenance(c *gin.Context) {
	list, err := maintenanceService(c).List(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/maintenance/:id
func GetMaintenanceByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	m, err := maintenanceService(c).Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// POST /api/maintenance
func CreateMaintenance(c *gin.Context) {
	var p models.MaintenancePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	m, err := maintenanceService(c).Create(c.Request.Context(), middleware.CurrentUser(c), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// PUT /api/maintenance/:id
func UpdateMaintenance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p models.MaintenancePayload
	if !BindJSONOrError(c, &p) {
		return
	}
	m, err := maintenanceService(c).Update(c.Request.Context(), middleware.CurrentUser(c), id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DELETE /api/maintenance/:id
func DeleteMaintenance(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := maintenanceService(c).Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Maintenance record deleted"})
}
