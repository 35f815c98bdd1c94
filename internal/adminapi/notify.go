package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/notify"
	"github.com/yallarent/yallarent/internal/stats"
	"github.com/yallarent/yallarent/internal/store"
	"github.com/yallarent/yallarent/internal/webserver"
)

func registerNotifyRoutes() {
	webserver.AdminGET("/notifications", listNotifications)
	webserver.AdminPUT("/notifications/message", updateNotificationMessage)
	webserver.AdminPOST("/notifications/send", sendNotifications)
}

// notifyEntry is one row of the reminder list.
type notifyEntry struct {
	Customer  domain.Customer `json:"customer"`
	Remaining float64         `json:"remaining"`
	Message   string          `json:"message"`
}

func buildNotifyEntries(st *store.Store) []notifyEntry {
	template := st.NotificationMessage()
	eligible := stats.NotifyList(st.Customers())
	entries := make([]notifyEntry, 0, len(eligible))
	for _, cust := range eligible {
		balance := stats.OutstandingBalance(cust)
		entries = append(entries, notifyEntry{
			Customer:  cust,
			Remaining: balance,
			Message:   notify.RenderReminder(template, cust, balance),
		})
	}
	return entries
}

// listNotifications returns the customers whose outstanding balance exceeds
// the reminder threshold, with the rendered message per customer.
func listNotifications(c echo.Context) error {
	st := GetStore(c)
	return ok(c, echo.Map{
		"message":   st.NotificationMessage(),
		"threshold": stats.NotifyThreshold,
		"customers": buildNotifyEntries(st),
	})
}

type messagePayload struct {
	Message string `json:"message" validate:"required,max=2000"`
}

func updateNotificationMessage(c echo.Context) error {
	var payload messagePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse message", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if err := GetStore(c).SetNotificationMessage(strings.TrimSpace(payload.Message)); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save message", err.Error())
	}
	auditLog(c, "update_notification_message", "updated reminder template")
	return ok(c, echo.Map{"message": GetStore(c).NotificationMessage()})
}

// sendNotifications renders the reminder for every eligible customer and
// mails the summary to the back office. With SMTP disabled the entries are
// still returned, marked as skipped.
func sendNotifications(c echo.Context) error {
	a := GetApp(c)
	st := a.Store()
	entries := buildNotifyEntries(st)
	if len(entries) == 0 {
		return ok(c, echo.Map{"sent": false, "count": 0, "entries": entries})
	}

	rendered := make([]string, 0, len(entries))
	for _, e := range entries {
		rendered = append(rendered, e.Message)
	}

	sent := true
	to := st.SiteConfig().Contact.Email
	err := a.Notifier().SendReminderSummary(to, rendered)
	switch {
	case err == nil:
	case err == notify.ErrDisabled:
		sent = false
	default:
		return fail(c, http.StatusInternalServerError, "MAIL_ERROR", "Failed to send reminder summary", err.Error())
	}

	auditLog(c, "send_notifications", fmt.Sprintf("reminder summary for %d customers (sent=%v)", len(entries), sent))
	return ok(c, echo.Map{"sent": sent, "count": len(entries), "entries": entries})
}
