package handlers

import (
	"net/http"

	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/http/middleware"
	"github.com/kaicharlakarun/nrk-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func companyService(c *gin.Context) services.CompanyService {
	return services.CompanyService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/companies
func GetCompanies(c *gin.Context) {
	list, err := companyService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/companies/:id
func GetCompanyByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	co, err := companyService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// POST /api/companies
func CreateCompany(c *gin.Context) {
	var p models.CompanyPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	co, err := companyService(c).Create(c.Request.Context(), middleware.CurrentUser(c), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, co)
}

// PUT /api/companies/:id
func UpdateCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p models.CompanyPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	co, err := companyService(c).Update(c.Request.Context(), middleware.CurrentUser(c), id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, co)
}

// DELETE /api/companies/:id
func DeleteCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := companyService(c).Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}
