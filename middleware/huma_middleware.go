package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/saandeepkondury/py-trends-API/customerrors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

const (
	APIKeyHeader        = "X-API-Key"
	InvalidAPIKeyDetail = "Invalid API key"
)

// CheckAPIKey compares the provided key against the configured secret.
// An empty secret disables the check.
func CheckAPIKey(secret, provided string) error {
	if secret == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) != 1 {
		return customerrors.ErrInvalidAPIKey
	}
	return nil
}

func HumaAPIKeyMiddleware(api huma.API, secret string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if err := CheckAPIKey(secret, ctx.Header(APIKeyHeader)); err != nil {
			log.Warn().
				Str("method", ctx.Method()).
				Str("path", ctx.URL().Path).
				Msg("API key rejected")
			huma.WriteErr(api, ctx, http.StatusUnauthorized, InvalidAPIKeyDetail)
			return
		}
		next(ctx)
	}
}
