package controller

import (
	"errors"

	"github.com/saandeepkondury/py-trends-API/customerrors"
	"github.com/saandeepkondury/py-trends-API/middleware"

	"github.com/danielgtaylor/huma/v2"
)

const SecuritySchemeAPIKey = "apiKey"

// NewHumaConfig returns the OpenAPI config for the trends operations. The
// $schema link hook is dropped so bodies keep exactly the documented fields.
func NewHumaConfig() huma.Config {
	config := huma.DefaultConfig("Pytrends API", "1.0.0")
	config.CreateHooks = nil
	config.OpenAPIPath = "/openapi"
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		SecuritySchemeAPIKey: {
			Type: "apiKey",
			In:   "header",
			Name: middleware.APIKeyHeader,
		},
	}
	return config
}

// toHumaError maps service errors to HTTP problems. Provider failures are not
// translated; huma reports them as 500.
func toHumaError(err error) error {
	switch {
	case errors.Is(err, customerrors.ErrInvalidAPIKey):
		return huma.Error401Unauthorized(middleware.InvalidAPIKeyDetail)
	case customerrors.IsValidation(err):
		return huma.Error422UnprocessableEntity("validation failed", err)
	default:
		return err
	}
}
