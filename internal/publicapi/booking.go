package publicapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/webserver"
)

func registerBookingRoutes() {
	webserver.ApiPOST("/bookings", createBooking)
}

// createBooking accepts the public booking form. The store snapshots the
// referenced car's bilingual name into the record; a carId pointing at a
// deleted car is accepted and stored with the fallback name.
func createBooking(c echo.Context) error {
	var draft domain.BookingDraft
	if err := c.Bind(&draft); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse booking parameters", nil)
	}
	if err := c.Validate(&draft); err != nil {
		if verrs, okCast := err.(validator.ValidationErrors); okCast {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "Booking validation failed", fields)
		}
		return fail(c, http.StatusBadRequest, "VALIDATION_FAILED", "Booking validation failed", err.Error())
	}

	draft.FullName = strings.TrimSpace(draft.FullName)
	draft.PhoneNumber = strings.TrimSpace(draft.PhoneNumber)

	booking, err := GetStore(c).AddBooking(draft)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to save booking", err.Error())
	}
	zap.S().Infof("new booking %s for car %d (%s)", booking.ID, booking.CarID, booking.FullName)
	return ok(c, booking)
}
