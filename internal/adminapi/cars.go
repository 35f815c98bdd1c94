package adminapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/webserver"
)

type carPayload struct {
	Name     domain.LocalizedText `json:"name"`
	Category string               `json:"category" validate:"required,oneof=economy suv luxury"`
	Images   []string             `json:"images"`
	Specs    domain.CarSpecs      `json:"specs"`
	Price    domain.CarPrice      `json:"price"`
}

func registerCarRoutes() {
	webserver.AdminGET("/cars", listCars)
	webserver.AdminGET("/cars/:id", getCar)
	webserver.AdminPOST("/cars", createCar)
	webserver.AdminPUT("/cars/:id", updateCar)
	webserver.AdminDELETE("/cars/:id", deleteCar)
}

func (p *carPayload) check() (string, bool) {
	if strings.TrimSpace(p.Name.En) == "" || strings.TrimSpace(p.Name.Ar) == "" {
		return "Car name is required in both languages", false
	}
	if p.Price.Daily < 0 || p.Price.Weekly < 0 {
		return "Car prices cannot be negative", false
	}
	return "", true
}

func (p *carPayload) toCar(id int64) domain.Car {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return domain.Car{
		ID:       id,
		Name:     p.Name,
		Category: p.Category,
		Images:   images,
		Specs:    p.Specs,
		Price:    p.Price,
	}
}

func listCars(c echo.Context) error {
	return ok(c, GetStore(c).Cars())
}

func getCar(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID", nil)
	}
	car, found := GetStore(c).GetCar(id)
	if !found {
		return fail(c, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found", nil)
	}
	return ok(c, car)
}

func createCar(c echo.Context) error {
	var payload carPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse car parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if msg, valid := payload.check(); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_CAR", msg, nil)
	}

	car, err := GetStore(c).CreateCar(payload.toCar(0))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to create car", err.Error())
	}
	auditLog(c, "create_car", fmt.Sprintf("created car %d (%s)", car.ID, car.Name.En))
	return ok(c, car)
}

// updateCar replaces the whole record keyed by id. An unknown id leaves the
// collection unchanged.
func updateCar(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID", nil)
	}
	var payload carPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse car parameters", nil)
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	if msg, valid := payload.check(); !valid {
		return fail(c, http.StatusBadRequest, "INVALID_CAR", msg, nil)
	}

	car := payload.toCar(id)
	if err := GetStore(c).UpdateCar(car); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to update car", err.Error())
	}
	auditLog(c, "update_car", fmt.Sprintf("updated car %d", id))
	return ok(c, car)
}

// deleteCar removes the car only. Customers, bookings and content blocks
// referencing it keep their carId; readers render the dangling reference as
// N/A.
func deleteCar(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID", nil)
	}
	if err := GetStore(c).DeleteCar(id); err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to delete car", err.Error())
	}
	auditLog(c, "delete_car", fmt.Sprintf("deleted car %d", id))
	return ok(c, echo.Map{"id": id})
}
