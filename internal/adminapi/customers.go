package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/stats"
	"github.com/yallarent/yallarent/internal/webserver"
)

type customerPayload struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Phone       string  `json:"phone" validate:"required,min=5,max=30"`
	CarID       int64   `json:"carId" validate:"required"`
	RentalDate  string  `json:"rentalDate" validate:"required"`
	ReturnDate  string  `json:"returnDate" validate:"required"`
	TotalAmount float64 `json:"totalAmount" validate:"gte=0"`
	PaidAmount  float64 `json:"paidAmount" validate:"gte=0"`
}

// customerView decorates a customer with the derived fields the admin table
// shows. The remaining balance is always recomputed, never stored.
type customerView struct {
	domain.Customer
	CarName          string  `json:"carName"`
	RemainingBalance float64 `json:"remainingBalance"`
	Late             bool    `json:"late"`
}

func registerCustomerRoutes() {
	webserver.AdminGET("/customers", listCustomers)
	webserver.AdminPOST("/customers", createCustomer)
	webserver.AdminPUT("/customers/:id", updateCustomer)
	webserver.AdminDELETE("/customers/:id", deleteCustomer)
}

func (p *customerPayload) toCustomer(id int64) domain.Customer {
	return domain.Customer{
		ID:          id,
		Name:        p.Name,
		Phone:       p.Phone,
		CarID:       p.CarID,
		RentalDate:  p.RentalDate,
		ReturnDate:  p.ReturnDate,
		TotalAmount: p.TotalAmount,
		PaidAmount:  p.PaidAmount,
	}
}

func listCustomers(c echo.Context) error {
	st := GetStore(c)
	lang := st.Language()
	now := time.Now()
	customers := st.Customers()

	views := make([]customerView, 0, len(customers))
	for _, cust := range customers {
		carName := "N/A"
		if car, found := st.GetCar(cust.CarID); found {
			carName = car.Name.Pick(lang)
		}
		views = append(views, customerView{
			Customer:         cust,
			CarName:          carName,
			RemainingBalance: stats.OutstandingBalance(cust),
			Late:             stats.IsLate(cust, now),
		})
	}
	return ok(c, views)
}

func createCustomer(c echo.Context) error {
	var payload customerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	customer, err := GetStore(c).CreateCustomer(payload.toCustomer(0))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create customer", err.Error())
	}
	auditLog(c, "create_customer", fmt.Sprintf("created customer %d (%s)", customer.ID, customer.Name))
	return ok(c, customer)
}

func updateCustomer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	var payload customerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	customer := payload.toCustomer(id)
	if err := GetStore(c).UpdateCustomer(customer); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update customer", err.Error())
	}
	auditLog(c, "update_customer", fmt.Sprintf("updated customer %d", id))
	return ok(c, customer)
}

func deleteCustomer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	if err := GetStore(c).DeleteCustomer(id); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete customer", err.Error())
	}
	auditLog(c, "delete_customer", fmt.Sprintf("deleted customer %d", id))
	return ok(c, echo.Map{"id": id})
}
