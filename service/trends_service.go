package service

import (
	"context"
	"fmt"
	"time"

	"github.com/saandeepkondury/py-trends-API/customerrors"
	"github.com/saandeepkondury/py-trends-API/metric"
	"github.com/saandeepkondury/py-trends-API/model"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// TrendsClient is the provider collaborator: configure a query, then fetch
// its tables. Implementations are single-use.
type TrendsClient interface {
	BuildPayload(ctx context.Context, query model.TrendQuery) error
	InterestOverTime(ctx context.Context) (*model.Table, error)
	RelatedQueries(ctx context.Context) (map[string]model.RelatedTables, error)
}

// ClientFactory returns a fresh TrendsClient for each request.
type ClientFactory func() TrendsClient

type TrendsService interface {
	InterestOverTime(ctx context.Context, query model.TrendQuery) (*model.InterestOverTimeBody, error)
	RelatedQueries(ctx context.Context, query model.TrendQuery) (*model.RelatedQueriesBody, error)
}

type TrendsServiceImpl struct {
	newClient ClientFactory
	metrics   *metric.Metrics
}

func NewTrendsService(newClient ClientFactory, m *metric.Metrics) TrendsService {
	return &TrendsServiceImpl{
		newClient: newClient,
		metrics:   m,
	}
}

func (s *TrendsServiceImpl) InterestOverTime(ctx context.Context, query model.TrendQuery) (*model.InterestOverTimeBody, error) {
	query, err := prepare(query)
	if err != nil {
		return nil, err
	}

	client, err := s.configure(ctx, "interest_over_time", query)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	table, err := client.InterestOverTime(ctx)
	s.metrics.RecordUpstream("interest_over_time", err, time.Since(start))
	if err != nil {
		return nil, s.upstreamFailure("interest_over_time", query, err)
	}

	if table.Empty() {
		noPartial := false
		return &model.InterestOverTimeBody{Data: []model.Record{}, IsPartial: &noPartial}, nil
	}

	records, anyPartial := NormalizeTimeline(table)
	meta, err := echoMeta(query)
	if err != nil {
		return nil, err
	}
	return &model.InterestOverTimeBody{
		Data: records,
		Meta: &model.InterestOverTimeMeta{QueryMeta: meta, IsPartialAny: anyPartial},
	}, nil
}

func (s *TrendsServiceImpl) RelatedQueries(ctx context.Context, query model.TrendQuery) (*model.RelatedQueriesBody, error) {
	query, err := prepare(query)
	if err != nil {
		return nil, err
	}

	client, err := s.configure(ctx, "related_queries", query)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	related, err := client.RelatedQueries(ctx)
	s.metrics.RecordUpstream("related_queries", err, time.Since(start))
	if err != nil {
		return nil, s.upstreamFailure("related_queries", query, err)
	}

	meta, err := echoMeta(query)
	if err != nil {
		return nil, err
	}
	return &model.RelatedQueriesBody{
		Data: NormalizeRelated(related),
		Meta: meta,
	}, nil
}

// configure creates the per-request client and hands it the query.
func (s *TrendsServiceImpl) configure(ctx context.Context, op string, query model.TrendQuery) (TrendsClient, error) {
	client := s.newClient()

	start := time.Now()
	err := client.BuildPayload(ctx, query)
	s.metrics.RecordUpstream("build_payload", err, time.Since(start))
	if err != nil {
		return nil, s.upstreamFailure(op, query, err)
	}
	return client, nil
}

func (s *TrendsServiceImpl) upstreamFailure(op string, query model.TrendQuery, err error) error {
	log.Error().
		Err(err).
		Str("operation", op).
		Strs("keywords", query.Keywords).
		Str("timeframe", query.Timeframe).
		Msg("trends provider call failed")
	return customerrors.NewUpstreamError(op, err)
}

func prepare(query model.TrendQuery) (model.TrendQuery, error) {
	query = query.WithDefaults()
	if err := query.Validate(); err != nil {
		return query, err
	}
	return query, nil
}

func echoMeta(query model.TrendQuery) (model.QueryMeta, error) {
	var meta model.QueryMeta
	if err := copier.CopyWithOption(&meta, &query, copier.Option{DeepCopy: true}); err != nil {
		return meta, fmt.Errorf("failed to build response meta: %w", err)
	}
	return meta, nil
}
