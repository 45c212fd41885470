package domain

import "strings"

// Roles known to the auth layer.
const (
	RoleAdmin  = "admin"
	RoleDriver = "driver"
)

// RequestContext carries the authenticated principal. It is trusted as-is;
// the token was already verified by the auth middleware.
type RequestContext struct {
	UserID int64  `json:"id"`
	Role   string `json:"role"`
}

func (rc RequestContext) IsAdmin() bool {
	return strings.EqualFold(rc.Role, RoleAdmin)
}

func (rc RequestContext) IsDriver() bool {
	return strings.EqualFold(rc.Role, RoleDriver)
}

// DriverScope returns the driver id the principal is restricted to, or nil for admins.
func (rc RequestContext) DriverScope() *int64 {
	if rc.IsAdmin() {
		return nil
	}
	id := rc.UserID
	return &id
}
