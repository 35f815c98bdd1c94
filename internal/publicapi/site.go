package publicapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/yallarent/yallarent/internal/domain"
	"github.com/yallarent/yallarent/internal/webserver"
)

func registerSiteRoutes() {
	webserver.ApiGET("/cars", listCars)
	webserver.ApiGET("/cars/:id", getCar)
	webserver.ApiGET("/cars/:id/content", getCarContent)
	webserver.ApiGET("/branches", listBranches)
	webserver.ApiGET("/offers", listOffers)
	webserver.ApiGET("/site", getSiteConfig)
}

// listCars returns the fleet, optionally filtered by category.
func listCars(c echo.Context) error {
	cars := GetStore(c).Cars()
	category := c.QueryParam("category")
	if category == "" {
		return ok(c, cars)
	}
	if !domain.ValidCarCategory(category) {
		return fail(c, http.StatusBadRequest, "INVALID_CATEGORY", "Unknown car category", domain.CarCategories)
	}
	filtered := make([]domain.Car, 0, len(cars))
	for _, car := range cars {
		if car.Category == category {
			filtered = append(filtered, car)
		}
	}
	return ok(c, filtered)
}

func getCar(c echo.Context) error {
	id, err := cast.ToInt64E(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID", nil)
	}
	car, found := GetStore(c).GetCar(id)
	if !found {
		return fail(c, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found", nil)
	}
	return ok(c, car)
}

// getCarContent returns the content blocks attached to a car. Blocks whose
// car was deleted are reachable only through the admin API.
func getCarContent(c echo.Context) error {
	id, err := cast.ToInt64E(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid car ID", nil)
	}
	blocks := make([]domain.CarContent, 0)
	for _, block := range GetStore(c).CarContents() {
		if block.CarID == id {
			blocks = append(blocks, block)
		}
	}
	return ok(c, blocks)
}

func listBranches(c echo.Context) error {
	return ok(c, GetStore(c).Branches())
}

func listOffers(c echo.Context) error {
	return ok(c, GetStore(c).Offers())
}

func getSiteConfig(c echo.Context) error {
	return ok(c, GetStore(c).SiteConfig())
}
