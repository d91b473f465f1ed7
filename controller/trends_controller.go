package controller

import (
	"context"
	"net/http"

	"github.com/saandeepkondury/py-trends-API/middleware"
	"github.com/saandeepkondury/py-trends-API/model"
	"github.com/saandeepkondury/py-trends-API/service"

	"github.com/danielgtaylor/huma/v2"
)

type TrendsController struct {
	trendsService service.TrendsService
	apiKey        string
}

func NewTrendsController(ts service.TrendsService, apiKey string) *TrendsController {
	return &TrendsController{
		trendsService: ts,
		apiKey:        apiKey,
	}
}

func (ctrl *TrendsController) RegisterRoutes(api huma.API) {
	keyMw := middleware.HumaAPIKeyMiddleware(api, ctrl.apiKey)

	huma.Register(api, huma.Operation{
		OperationID: "interest-over-time",
		Method:      http.MethodPost,
		Path:        "/trends/interest_over_time",
		Summary:     "Interest over time",
		Description: "Search interest per keyword over the requested timeframe. isPartialAny is true when the latest bucket is still being collected.",
		Middlewares: huma.Middlewares{keyMw},
		Security:    []map[string][]string{{SecuritySchemeAPIKey: {}}},
		Tags:        []string{"Trends"},
	}, ctrl.interestOverTime)

	huma.Register(api, huma.Operation{
		OperationID: "related-queries",
		Method:      http.MethodPost,
		Path:        "/trends/related_queries",
		Summary:     "Related queries",
		Description: "Top and rising related queries for each keyword.",
		Middlewares: huma.Middlewares{keyMw},
		Security:    []map[string][]string{{SecuritySchemeAPIKey: {}}},
		Tags:        []string{"Trends"},
	}, ctrl.relatedQueries)
}

func (ctrl *TrendsController) interestOverTime(ctx context.Context, input *model.TrendQueryInput) (*model.InterestOverTimeResponse, error) {
	body, err := ctrl.trendsService.InterestOverTime(ctx, input.Body)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &model.InterestOverTimeResponse{Body: *body}, nil
}

func (ctrl *TrendsController) relatedQueries(ctx context.Context, input *model.TrendQueryInput) (*model.RelatedQueriesResponse, error) {
	body, err := ctrl.trendsService.RelatedQueries(ctx, input.Body)
	if err != nil {
		return nil, toHumaError(err)
	}
	return &model.RelatedQueriesResponse{Body: *body}, nil
}
