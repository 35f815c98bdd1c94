package adminapi

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/yallarent/yallarent/internal/app"
	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/store"
	"github.com/yallarent/yallarent/internal/webserver"
	"github.com/yallarent/yallarent/pkg/common"
)

// GetApp returns the application bound to the request.
func GetApp(c echo.Context) app.AppContext {
	return webserver.GetApp(c)
}

// GetStore returns the collection store bound to the request.
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

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return ok(c, echo.Map{
		"items":     items,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page = cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize = cast.ToInt(c.QueryParam("page_size"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return cast.ToInt64E(c.Param(name))
}

func handleValidationError(c echo.Context, err error) error {
	if verrs, okCast := err.(validator.ValidationErrors); okCast {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", fields)
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", err.Error())
}

// oprName returns the operator username carried in the request's JWT.
func oprName(c echo.Context) string {
	if name, okCast := c.Get("opr_username").(string); okCast && name != "" {
		return name
	}
	return "admin"
}

// auditLog appends an operator-log entry for an admin mutation. Failures are
// logged, never surfaced to the caller.
func auditLog(c echo.Context, action, desc string) {
	entry := domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   oprName(c),
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	}
	if err := GetStore(c).AppendOprLog(entry); err != nil {
		zap.S().Warnf("failed to append operator log: %s", err)
	}
}
