package httpapi

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-forecast-collection/internal/common"
	"github.com/i474232898/weather-forecast-collection/internal/forecast"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/accuweather"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/climacell"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/nws"
	"github.com/i474232898/weather-forecast-collection/internal/forecast/openweathermap"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app. Requests without
// coordinates use defaults.
func RegisterRoutes(app *fiber.App, service *forecast.Service, defaults forecast.Coordinates) {
	v1 := app.Group("/api/v1")

	v1.Get("/providers", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"providers": service.Providers()})
	})

	v1.Get("/forecasts", func(c *fiber.Ctx) error {
		at, err := parseLocationQuery(c, defaults)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		results, err := service.Collect(c.UserContext(), at, common.SplitList(c.Query("providers"))...)
		if err != nil {
			return fiber.NewError(statusFor(err), err.Error())
		}

		views := make([]resultView, len(results))
		for i, r := range results {
			views[i] = resultView{
				Provider:  r.Provider,
				Forecast:  r.Forecast,
				Error:     newErrorView(r.Err),
				ElapsedMS: r.Elapsed.Milliseconds(),
			}
		}
		return c.JSON(fiber.Map{
			"coordinates": at,
			"results":     views,
		})
	})

	v1.Get("/forecasts/:provider", func(c *fiber.Ctx) error {
		at, err := parseLocationQuery(c, defaults)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		f, err := service.Fetch(c.UserContext(), c.Params("provider"), at)
		if err != nil {
			return fiber.NewError(statusFor(err), err.Error())
		}

		if c.Query("format") == "raw" {
			doc, ok := rawDocument(f)
			if !ok {
				return fiber.NewError(fiber.StatusBadRequest, "raw output is not available for "+f.ProviderName())
			}
			return c.JSON(doc)
		}
		return c.JSON(f)
	})
}

func parseLocationQuery(c *fiber.Ctx, defaults forecast.Coordinates) (forecast.Coordinates, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" && lonStr == "" {
		return defaults, nil
	}
	if latStr == "" || lonStr == "" {
		return forecast.Coordinates{}, errors.New("lat and lon must be given together")
	}

	var at forecast.Coordinates
	var err error
	if at.Latitude, err = strconv.ParseFloat(latStr, 64); err != nil {
		return forecast.Coordinates{}, errors.New("lat must be a number")
	}
	if at.Longitude, err = strconv.ParseFloat(lonStr, 64); err != nil {
		return forecast.Coordinates{}, errors.New("lon must be a number")
	}
	if err := validate.Struct(at); err != nil {
		return forecast.Coordinates{}, err
	}
	return at, nil
}

type resultView struct {
	Provider  string            `json:"provider"`
	Forecast  forecast.Forecast `json:"forecast,omitempty"`
	Error     *errorView        `json:"error,omitempty"`
	ElapsedMS int64             `json:"elapsedMs"`
}

type errorView struct {
	Kind       string `json:"kind"`
	Message    string `json:"message"`
	Path       string `json:"path,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
}

func newErrorView(err error) *errorView {
	if err == nil {
		return nil
	}
	v := &errorView{Kind: "internal", Message: err.Error()}
	if fe, ok := forecast.AsError(err); ok {
		v.Kind = kindName(fe.Kind)
		v.Path = fe.Path
		v.StatusCode = fe.StatusCode
	} else if errors.Is(err, forecast.ErrMissingCredentials) {
		v.Kind = "missing_credentials"
	}
	return v
}

func kindName(kind error) string {
	switch kind {
	case forecast.ErrTransport:
		return "transport"
	case forecast.ErrMalformedResponse:
		return "malformed_response"
	case forecast.ErrSchemaValidation:
		return "schema_validation"
	case forecast.ErrUnsupported:
		return "unsupported"
	default:
		return "internal"
	}
}

// statusFor maps pipeline failures onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, forecast.ErrUnknownProvider):
		return fiber.StatusNotFound
	case errors.Is(err, forecast.ErrUnsupported):
		return fiber.StatusNotImplemented
	case errors.Is(err, forecast.ErrMissingCredentials), errors.Is(err, forecast.ErrNoProviders):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	case errors.Is(err, forecast.ErrTransport),
		errors.Is(err, forecast.ErrMalformedResponse),
		errors.Is(err, forecast.ErrSchemaValidation):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// rawDocument re-encodes f in its provider's own key naming.
func rawDocument(f forecast.Forecast) (any, bool) {
	switch v := f.(type) {
	case *accuweather.Forecast:
		docs := accuweather.Encode(v)
		return fiber.Map{
			"locationKey": docs.LocationKey,
			"conditions":  docs.Conditions,
			"fiveDay":     docs.FiveDay,
			"hourly":      docs.Hourly,
		}, true
	case *nws.Forecast:
		docs := nws.Encode(v)
		return fiber.Map{"points": docs.Points, "sevenDay": docs.SevenDay, "hourly": docs.Hourly}, true
	case *climacell.Forecast:
		return climacell.Encode(v), true
	case *openweathermap.Forecast:
		return openweathermap.Encode(v), true
	default:
		return nil, false
	}
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// NewApp builds the Fiber app with middleware, health endpoint and API routes.
func NewApp(service *forecast.Service, defaults forecast.Coordinates, middleware ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-forecast-collection",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          60 * time.Second,
		ErrorHandler:          ErrorHandler,
	})
	for _, m := range middleware {
		app.Use(m)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-forecast-collection",
		})
	})

	RegisterRoutes(app, service, defaults)
	return app
}
