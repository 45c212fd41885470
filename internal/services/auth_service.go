package services

import (
	"context"
	"database/sql"
	"errors"
	"net/mail"
	"strings"
	"time"

	intconfig "github.com/kaicharlakarun/nrk-backend/internal/config"
	intdb "github.com/kaicharlakarun/nrk-backend/internal/db"
	"github.com/kaicharlakarun/nrk-backend/internal/domain"
	"github.com/kaicharlakarun/nrk-backend/internal/domain/models"
	"github.com/kaicharlakarun/nrk-backend/internal/repositories"
	"github.com/kaicharlakarun/nrk-backend/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 6

var errBadCredentials = domain.UnauthorizedError{Msg: "Invalid credentials"}

// TokenClaims is the JWT body: principal id, role and expiry.
type TokenClaims struct {
	ID   int64  `json:"id"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type AuthResult struct {
	Token string          `json:"token"`
	User  models.AuthUser `json:"user"`
}

type AuthService struct {
	DB        *sql.DB
	Secret    []byte
	TTL       time.Duration
	Now       func() time.Time
	RequestID string
}

func (s AuthService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return utils.NowUTC()
}

// Login checks admins first, then drivers.
func (s AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, domain.ValidationError{Msg: "email and password are required"}
	}

	admin, err := repositories.AdminRepository{DB: s.db()}.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !passwordMatches(admin.PasswordHash, password) {
			return AuthResult{}, errBadCredentials
		}
		return s.result(models.AuthUser{ID: admin.ID, Name: admin.Name, Email: admin.Email, Role: domain.RoleAdmin})
	case !domain.IsNotFound(err):
		return AuthResult{}, err
	}

	driver, err := repositories.DriverRepository{DB: s.db()}.GetByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			return AuthResult{}, errBadCredentials
		}
		return AuthResult{}, err
	}
	if !passwordMatches(driver.PasswordHash, password) {
		return AuthResult{}, errBadCredentials
	}
	if !driver.IsActive {
		return AuthResult{}, domain.UnauthorizedError{Msg: "Account disabled"}
	}
	return s.result(models.AuthUser{ID: driver.ID, Name: driver.Name, Email: driver.Email, Role: domain.RoleDriver})
}

func (s AuthService) result(u models.AuthUser) (AuthResult, error) {
	token, err := s.IssueToken(u.ID, u.Role)
	if err != nil {
		return AuthResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", "user logged in", "user_id", u.ID, "role", u.Role)
	return AuthResult{Token: token, User: u}, nil
}

func (s AuthService) RegisterAdmin(ctx context.Context, name, email, password string) (models.AuthUser, error) {
	name = utils.NormalizeSpace(name)
	email = normalizeEmail(email)
	if err := validateAccount(name, email, password); err != nil {
		return models.AuthUser{}, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return models.AuthUser{}, err
	}
	id, err := repositories.AdminRepository{DB: s.db()}.Insert(ctx, models.Admin{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return models.AuthUser{}, domain.ConflictError{Resource: "admin", Msg: "email already registered", Err: err}
		}
		return models.AuthUser{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "register_admin", "admin registered", "admin_id", id)
	return models.AuthUser{ID: id, Name: name, Email: email, Role: domain.RoleAdmin}, nil
}

func (s AuthService) IssueToken(id int64, role string) (string, error) {
	if len(s.Secret) == 0 {
		return "", domain.InternalError{Msg: "jwt secret not configured"}
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	now := s.now()
	claims := TokenClaims{
		ID:   id,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// ParseToken verifies an HS256 token and returns its principal.
func ParseToken(secret []byte, raw string) (domain.RequestContext, error) {
	var claims TokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.RequestContext{}, domain.UnauthorizedError{Msg: "Token expired", Err: err}
		}
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "Invalid token", Err: err}
	}
	if claims.ID <= 0 || (claims.Role != domain.RoleAdmin && claims.Role != domain.RoleDriver) {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "Invalid token"}
	}
	return domain.RequestContext{UserID: claims.ID, Role: claims.Role}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateAccount(name, email, password string) error {
	if err := validateIdentity(name, email); err != nil {
		return err
	}
	if len(password) < minPasswordLen {
		return domain.ValidationError{Field: "password", Msg: "Password min 6 chars"}
	}
	return nil
}

func validateIdentity(name, email string) error {
	if len([]rune(name)) < 2 {
		return domain.ValidationError{Field: "name", Msg: "Name required"}
	}
	if !validEmail(email) {
		return domain.ValidationError{Field: "email", Msg: "Valid email required"}
	}
	return nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.InternalError{Msg: "failed to hash password", Err: err}
	}
	return string(hash), nil
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
