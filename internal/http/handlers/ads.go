package handlers

import (
	"net/http"

	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/http/middleware"
	"github.com/kaicharlakarun/nrk-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func adService(c *gin.Context) services.AdService {
	return services.AdService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/ads
func GetAds(c *gin.Context) {
	list, err := adService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/ads/:id
func GetAdByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := adService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// POST /api/ads
func CreateAd(c *gin.Context) {
	var p models.AdPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	a, err := adService(c).Create(c.Request.Context(), p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// PUT /api/ads/:id
func UpdateAd(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var p models.AdPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	a, err := adService(c).Update(c.Request.Context(), id, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DELETE /api/ads/:id
func DeleteAd(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := adService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ad deleted"})
}
