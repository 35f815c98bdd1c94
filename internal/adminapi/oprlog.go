package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/webserver"
)

func registerOprLogRoutes() {
	webserver.AdminGET("/oprlog", listOprLogs)
}

// listOprLogs pages through the audit log, newest first.
func listOprLogs(c echo.Context) error {
	page, pageSize := parsePagination(c)

	logs := GetStore(c).OprLogs()
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}

	total := int64(len(logs))
	start := (page - 1) * pageSize
	if start > len(logs) {
		start = len(logs)
	}
	end := start + pageSize
	if end > len(logs) {
		end = len(logs)
	}
	items := make([]domain.SysOprLog, 0, end-start)
	items = append(items, logs[start:end]...)

	return paged(c, items, total, page, pageSize)
}
