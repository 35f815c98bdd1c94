// Package webserver owns the echo HTTP server. The public site API and the
// JWT-gated admin API both hang off it; handler packages register their
// routes through the Api*/Admin* helpers.
package webserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/yallarent/yallarent/internal/app"
)

// ContextAppKey is the echo context key the application is injected under.
const ContextAppKey = "appctx"

type WebServer struct {
	appCtx app.AppContext
	root   *echo.Echo
	api    *echo.Group
	admin  *echo.Group
}

var server *WebServer

// Init builds the package-level server instance.
func Init(appCtx app.AppContext) *WebServer {
	server = NewWebServer(appCtx)
	return server
}

func NewWebServer(appCtx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewCustomValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextAppKey, appCtx)
			return next(c)
		}
	})

	api := e.Group("/api")
	admin := api.Group("/admin")
	admin.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(appCtx.Config().Web.Secret),
		Skipper: func(c echo.Context) bool {
			return strings.HasSuffix(c.Path(), "/admin/login")
		},
	}))
	// expose the operator name from the (already verified) token
	admin.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.HasPrefix(auth, "Bearer ") {
				claims := jwt.MapClaims{}
				if _, _, err := jwt.NewParser().ParseUnverified(strings.TrimPrefix(auth, "Bearer "), claims); err == nil {
					if name, ok := claims["username"].(string); ok {
						c.Set("opr_username", name)
					}
				}
			}
			return next(c)
		}
	})

	return &WebServer{appCtx: appCtx, root: e, api: api, admin: admin}
}

// Echo exposes the underlying server for tests and graceful shutdown.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func (s *WebServer) Start() error {
	cfg := s.appCtx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.S().Infof("starting web server on %s", addr)
	err := s.root.Start(addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// GetApp returns the application injected into the request context.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(ContextAppKey).(app.AppContext)
}

// Route registration helpers used by the handler packages.

func ApiGET(path string, h echo.HandlerFunc)    { server.api.GET(path, h) }
func ApiPOST(path string, h echo.HandlerFunc)   { server.api.POST(path, h) }
func ApiPUT(path string, h echo.HandlerFunc)    { server.api.PUT(path, h) }
func ApiDELETE(path string, h echo.HandlerFunc) { server.api.DELETE(path, h) }

func AdminGET(path string, h echo.HandlerFunc)    { server.admin.GET(path, h) }
func AdminPOST(path string, h echo.HandlerFunc)   { server.admin.POST(path, h) }
func AdminPUT(path string, h echo.HandlerFunc)    { server.admin.PUT(path, h) }
func AdminDELETE(path string, h echo.HandlerFunc) { server.admin.DELETE(path, h) }

// CustomValidator adapts go-playground/validator to echo's Validator.
type CustomValidator struct {
	validate *validator.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validate: validator.New()}
}

func (v *CustomValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
