package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/wxdash/weather-dashboard/internal/dashboard"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app (serve mode).
func RegisterRoutes(app *fiber.App, service *dashboard.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		var q cityQuery
		q.City = c.Query("city")

		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		res, err := service.Latest(q.City)
		if err != nil {
			if errors.Is(err, dashboard.ErrNoData) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data for requested city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.JSON(res)
	})
}

// cityQuery holds query parameters identifying a city.
type cityQuery struct {
	City string `validate:"required"`
}
