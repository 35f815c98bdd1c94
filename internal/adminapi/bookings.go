package adminapi

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yallarent/yallarent/internal/stats"
	"github.com/yallarent/yallarent/internal/webserver"
)

func registerBookingRoutes() {
	webserver.AdminGET("/bookings", listBookings)
}

// listBookings returns bookings newest first. Bookings are created only by
// the public form and never edited here.
func listBookings(c echo.Context) error {
	bookings := GetStore(c).Bookings()
	// reverse insertion order for review
	for i, j := 0, len(bookings)-1; i < j; i, j = i+1, j-1 {
		bookings[i], bookings[j] = bookings[j], bookings[i]
	}
	return ok(c, bookings)
}

func registerDashboardRoutes() {
	webserver.AdminGET("/dashboard", getDashboard)
}

// getDashboard recomputes the landing-page counters from the current
// snapshots on every call.
func getDashboard(c echo.Context) error {
	st := GetStore(c)
	dashboard := stats.BuildDashboard(st.Cars(), st.Customers(), st.Bookings(), time.Now())
	return ok(c, dashboard)
}
