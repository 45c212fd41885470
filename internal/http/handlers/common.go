package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type appSettings struct {
	secret   []byte
	ttl      time.Duration
	assetDir string
}

var (
	settingsMu sync.RWMutex
	settings   appSettings
)

// Configure stores the token and asset settings used by the handlers.
func Configure(env intconfig.Env) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = appSettings{secret: []byte(env.JWTSecret), ttl: env.JWTExpiresIn, assetDir: env.AssetDir}
}

func currentSettings() appSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// RespondError sends a plain error payload with request_id included.
func RespondError(c *gin.Context, status int, message string) {
	respondError(c, status, "", message)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "request body is empty")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error())
		return false
	}
	return true
}

// pathID parses the :id route param; it writes a 400 and returns false when invalid.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func queryInt64(c *gin.Context, key string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, domain.ValidationError{Field: key, Msg: "must be a positive integer"}
	}
	return &v, nil
}

func queryBool(c *gin.Context, key string) bool {
	b, _ := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return b
}

func sendAttachment(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
