package api

import (
	"log/slog"
	stdhttp "net/http"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	h "github.com/kaicharlakarun/nrk-backend/internal/http/handlers"
	"github.com/kaicharlakarun/nrk-backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		slog.Warn("failed to set trusted proxies", "err", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	admin := middleware.RequireRoles(domain.RoleAdmin)
	anyRole := middleware.RequireRoles(domain.RoleAdmin, domain.RoleDriver)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/admin/register", h.RegisterAdmin)

		secured := api.Group("", middleware.Auth([]byte(env.JWTSecret)))
		secured.GET("/routes", admin, h.Routes)

		mountDrivers(secured.Group("/drivers"), admin, anyRole)
		mountVehicles(secured.Group("/vehicles"), admin, anyRole)
		mountTrips(secured.Group("/trips", anyRole))
		mountMaintenance(secured.Group("/maintenance", anyRole))
		mountAds(secured.Group("/ads", admin))
		mountCompanies(secured.Group("/companies", admin))
		mountInvoices(secured.Group("/invoices", admin))
	}

	h.SetRouter(r)
	return r
}

func mountDrivers(g *gin.RouterGroup, admin, anyRole gin.HandlerFunc) {
	g.GET("/me", middleware.RequireRoles(domain.RoleDriver), h.GetMyDriverProfile)
	g.GET("", admin, h.GetDrivers)
	g.GET("/:id", anyRole, h.GetDriverByID)
	g.POST("", admin, h.CreateDriver)
	g.PUT("/:id", admin, h.UpdateDriver)
	g.DELETE("/:id", admin, h.DeleteDriver)
}

func mountVehicles(g *gin.RouterGroup, admin, anyRole gin.HandlerFunc) {
	g.GET("", anyRole, h.GetVehicles)
	g.GET("/:id", anyRole, h.GetVehicleByID)
	g.POST("", admin, h.CreateVehicle)
	g.PUT("/:id", admin, h.UpdateVehicle)
	g.DELETE("/:id", admin, h.DeleteVehicle)
}

func mountTrips(g *gin.RouterGroup) {
	g.GET("", h.GetTrips)
	g.GET("/stats", h.GetTripStats)
	g.POST("", h.CreateTrip)
	g.GET("/:id", h.GetTripByID)
	g.GET("/:id/financials", h.GetTripFinancials)
	g.GET("/:id/whatsapp", h.GetTripWhatsAppLink)
	g.PUT("/:id", h.UpdateTrip)
	g.PATCH("/:id/restore", h.RestoreTrip)
	g.DELETE("/:id", h.DeleteTrip)
}

func mountMaintenance(g *gin.RouterGroup) {
	g.GET("", h.GetMaintenance)
	g.GET("/:id", h.GetMaintenanceByID)
	g.POST("", h.CreateMaintenance)
	g.PUT("/:id", h.UpdateMaintenance)
	g.DELETE("/:id", h.DeleteMaintenance)
}

func mountAds(g *gin.RouterGroup) {
	g.GET("", h.GetAds)
	g.GET("/:id", h.GetAdByID)
	g.POST("", h.CreateAd)
	g.PUT("/:id", h.UpdateAd)
	g.DELETE("/:id", h.DeleteAd)
}

func mountCompanies(g *gin.RouterGroup) {
	g.GET("", h.GetCompanies)
	g.GET("/:id", h.GetCompanyByID)
	g.POST("", h.CreateCompany)
	g.PUT("/:id", h.UpdateCompany)
	g.DELETE("/:id", h.DeleteCompany)
}

func mountInvoices(g *gin.RouterGroup) {
	g.GET("", h.GetInvoices)
	g.GET("/export", h.ExportInvoices)
	g.POST("", h.GenerateInvoice)
	g.GET("/:id", h.GetInvoiceByID)
	g.GET("/:id/pdf", h.GetInvoicePDF)
	g.PUT("/:id", h.UpdateInvoice)
	g.DELETE("/:id", h.DeleteInvoice)
}
