package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/webserver"
)

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.AdminPOST("/login", login)
	webserver.AdminPOST("/logout", logout)
}

// login verifies the operator credential against the stored bcrypt hash and
// issues the admin session token.
func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	username := strings.TrimSpace(payload.Username)
	opr, found := GetStore(c).GetOperatorByUsername(username)
	if !found || opr.Status != domain.ENABLED {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(opr.Password), []byte(payload.Password)); err != nil {
		zap.S().Warnf("failed admin login attempt for %s from %s", username, c.RealIP())
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	cfg := GetApp(c).Config().Web
	expire := time.Duration(cfg.JwtExpireHours) * time.Hour
	if expire <= 0 {
		expire = 24 * time.Hour
	}
	claims := jwt.MapClaims{
		"username": opr.Username,
		"level":    opr.Level,
		"exp":      time.Now().Add(expire).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue session token", nil)
	}

	opr.LastLogin = time.Now()
	if err := GetStore(c).UpdateOperator(opr); err != nil {
		zap.S().Warnf("failed to record operator login time: %s", err)
	}
	auditLog(c, "login", "operator logged in")

	return ok(c, echo.Map{
		"token":    signed,
		"username": opr.Username,
		"level":    opr.Level,
	})
}

// logout only audits; the token simply expires client-side.
func logout(c echo.Context) error {
	auditLog(c, "logout", "operator logged out")
	return ok(c, echo.Map{"logged_out": true})
}
