package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/yallarent/yallarent/internal/stats"
	"github.com/yallarent/yallarent/internal/webserver"
)

func registerExportRoutes() {
	webserver.AdminGET("/export/customers", exportCustomers)
	webserver.AdminGET("/export/bookings", exportBookings)
}

type customerCSVRow struct {
	ID          int64   `csv:"id"`
	Name        string  `csv:"name"`
	Phone       string  `csv:"phone"`
	CarName     string  `csv:"car"`
	RentalDate  string  `csv:"rental_date"`
	ReturnDate  string  `csv:"return_date"`
	TotalAmount float64 `csv:"total_amount"`
	PaidAmount  float64 `csv:"paid_amount"`
	Remaining   float64 `csv:"remaining"`
	Late        bool    `csv:"late"`
}

type bookingCSVRow struct {
	ID              string `csv:"id"`
	CarNameEn       string `csv:"car_en"`
	CarNameAr       string `csv:"car_ar"`
	FullName        string `csv:"full_name"`
	PhoneNumber     string `csv:"phone"`
	Email           string `csv:"email"`
	PickupLocation  string `csv:"pickup_location"`
	PickupTime      string `csv:"pickup_time"`
	DropoffLocation string `csv:"dropoff_location"`
	DropoffTime     string `csv:"dropoff_time"`
	Status          string `csv:"status"`
	CreatedAt       string `csv:"created_at"`
}

func csvAttachment(c echo.Context, name, body string) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, name))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(body))
}

func exportCustomers(c echo.Context) error {
	st := GetStore(c)
	lang := st.Language()
	now := time.Now()

	rows := make([]customerCSVRow, 0)
	for _, cust := range st.Customers() {
		carName := "N/A"
		if car, found := st.GetCar(cust.CarID); found {
			carName = car.Name.Pick(lang)
		}
		rows = append(rows, customerCSVRow{
			ID:          cust.ID,
			Name:        cust.Name,
			Phone:       cust.Phone,
			CarName:     carName,
			RentalDate:  cust.RentalDate,
			ReturnDate:  cust.ReturnDate,
			TotalAmount: cust.TotalAmount,
			PaidAmount:  cust.PaidAmount,
			Remaining:   stats.OutstandingBalance(cust),
			Late:        stats.IsLate(cust, now),
		})
	}

	body, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export customers", err.Error())
	}
	auditLog(c, "export_customers", fmt.Sprintf("exported %d customers", len(rows)))
	return csvAttachment(c, "customers.csv", body)
}

func exportBookings(c echo.Context) error {
	st := GetStore(c)

	rows := make([]bookingCSVRow, 0)
	for _, b := range st.Bookings() {
		rows = append(rows, bookingCSVRow{
			ID:              b.ID,
			CarNameEn:       b.CarName.En,
			CarNameAr:       b.CarName.Ar,
			FullName:        b.FullName,
			PhoneNumber:     b.PhoneNumber,
			Email:           b.Email,
			PickupLocation:  b.PickupLocation,
			PickupTime:      b.PickupTime,
			DropoffLocation: b.DropoffLocation,
			DropoffTime:     b.DropoffTime,
			Status:          b.Status,
			CreatedAt:       b.CreatedAt,
		})
	}

	body, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export bookings", err.Error())
	}
	auditLog(c, "export_bookings", fmt.Sprintf("exported %d bookings", len(rows)))
	return csvAttachment(c, "bookings.csv", body)
}
