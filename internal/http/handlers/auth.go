package handlers

import (
	"net/http"

	"github.com/kaicharlakarun/nrk-backend/internal/http/middleware"
	"github.com/kaicharlakarun/nrk-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func authService(c *gin.Context) services.AuthService {
	s := currentSettings()
	return services.AuthService{Secret: s.secret, TTL: s.ttl, RequestID: middleware.GetRequestID(c)}
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := authService(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/auth/admin/register
func RegisterAdmin(c *gin.Context) {
	var req registerAdminRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := authService(c).RegisterAdmin(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Admin registered", "user": user})
}
