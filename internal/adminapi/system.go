package adminapi

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	"github.com/yallarent/yallarent/internal/webserver"
)

var startTime = time.Now()

func registerSystemRoutes() {
	webserver.AdminGET("/system/status", getSystemStatus)
	webserver.AdminPOST("/system/backup", postSystemBackup)
}

// getSystemStatus reports a host/process snapshot for the admin status page.
func getSystemStatus(c echo.Context) error {
	status := echo.Map{
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
		"pid":        os.Getpid(),
		"uptime_sec": int64(time.Since(startTime).Seconds()),
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		status["cpu_percent"] = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		status["mem_percent"] = vm.UsedPercent
		status["mem_used_mb"] = vm.Used / 1024 / 1024
	}
	if info, err := host.Info(); err == nil {
		status["hostname"] = info.Hostname
		status["os"] = info.OS
		status["platform"] = info.Platform
	}

	return ok(c, status)
}

// postSystemBackup triggers an immediate store backup.
func postSystemBackup(c echo.Context) error {
	if err := GetApp(c).BackupStore(); err != nil {
		return fail(c, http.StatusInternalServerError, "BACKUP_ERROR", "Failed to back up store", err.Error())
	}
	auditLog(c, "backup_store", "manual store backup")
	return ok(c, echo.Map{"backed_up": true})
}
