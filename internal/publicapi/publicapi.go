// Package publicapi serves the marketing site: read-only collection
// snapshots, the booking form and the persisted language preference.
package publicapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yallarent/yallarent/internal/store"
	"github.com/yallarent/yallarent/internal/webserver"
)

// InitRouter registers every public route on the web server. Call after
// webserver.Init.
func InitRouter() {
	registerSiteRoutes()
	registerBookingRoutes()
	registerLanguageRoutes()
}

func GetStore(c echo.Context) *store.Store {
	return webserver.GetApp(c).Store()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, echo.Map{
		"success": false,
		"error":   echo.Map{"code": code, "message": message, "details": details},
	})
}
