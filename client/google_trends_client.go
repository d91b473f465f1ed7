package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/saandeepkondury/py-trends-API/customerrors"
	"github.com/saandeepkondury/py-trends-API/middleware"
	"github.com/saandeepkondury/py-trends-API/model"
	"github.com/saandeepkondury/py-trends-API/util"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

var (
	warmUpPath           = "/trends/explore/"
	explorePath          = "/trends/api/explore"
	interestOverTimePath = "/trends/api/widgetdata/multiline"
	relatedQueriesPath   = "/trends/api/widgetdata/relatedsearches"
	userAgent            = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

const (
	timeseriesWidget     = "TIMESERIES"
	relatedQueriesWidget = "RELATED_QUERIES"
	dateColumn           = "date"
	partialColumn        = "isPartial"
)

// GoogleTrendsClient talks to trends.google.com. One instance serves one
// request: BuildPayload stores the widgets that the fetch calls read.
type GoogleTrendsClient struct {
	client   *resty.Client
	hl       string
	tz       int
	keywords []string
	widgets  []exploreWidget
}

type exploreWidget struct {
	ID      string          `json:"id"`
	Token   string          `json:"token"`
	Request json.RawMessage `json:"request"`
}

type exploreResponse struct {
	Widgets []exploreWidget `json:"widgets"`
}

type comparisonItem struct {
	Keyword string `json:"keyword"`
	Time    string `json:"time"`
	Geo     string `json:"geo"`
}

type exploreRequest struct {
	ComparisonItem []comparisonItem `json:"comparisonItem"`
	Category       int              `json:"category"`
	Property       string           `json:"property"`
}

type timelineResponse struct {
	Default struct {
		TimelineData []timelinePoint `json:"timelineData"`
	} `json:"default"`
}

type timelinePoint struct {
	Time      string    `json:"time"`
	Value     []float64 `json:"value"`
	IsPartial bool      `json:"isPartial"`
}

type relatedResponse struct {
	Default struct {
		RankedList []rankedList `json:"rankedList"`
	} `json:"default"`
}

type rankedList struct {
	RankedKeyword []rankedKeyword `json:"rankedKeyword"`
}

type rankedKeyword struct {
	Query string  `json:"query"`
	Value float64 `json:"value"`
}

type relatedWidgetRequest struct {
	Restriction struct {
		ComplexKeywordsRestriction struct {
			Keyword []struct {
				Value string `json:"value"`
			} `json:"keyword"`
		} `json:"complexKeywordsRestriction"`
	} `json:"restriction"`
}

func NewGoogleTrendsClient(cfg model.TrendsClientConfig) *GoogleTrendsClient {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
	}

	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTransport(transport).
		SetTimeout(cfg.ConnectTimeout+cfg.ReadTimeout).
		SetHeaders(map[string]string{
			"User-Agent":      userAgent,
			"Accept":          "application/json, text/javascript, */*",
			"Accept-Encoding": "gzip, deflate, br",
			"Accept-Language": cfg.HL,
		}).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(cfg.BackoffFactor).
		SetRetryMaxWaitTime(max(8*cfg.BackoffFactor, time.Second)).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	c.OnAfterResponse(middleware.DecompressMiddleware)

	return &GoogleTrendsClient{client: c, hl: cfg.HL, tz: cfg.TZ}
}

// BuildPayload opens a provider session and resolves the widgets for query.
func (g *GoogleTrendsClient) BuildPayload(ctx context.Context, query model.TrendQuery) error {
	if err := g.warmUp(ctx); err != nil {
		return err
	}

	items := make([]comparisonItem, 0, len(query.Keywords))
	for _, kw := range query.Keywords {
		items = append(items, comparisonItem{Keyword: kw, Time: query.Timeframe, Geo: query.Geo})
	}
	reqJSON, err := json.Marshal(exploreRequest{
		ComparisonItem: items,
		Category:       query.Cat,
		Property:       query.Gprop,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal explore request: %w", err)
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"hl":  g.hl,
			"tz":  strconv.Itoa(g.tz),
			"req": string(reqJSON),
		}).
		Post(explorePath)
	body, err := checkResponse("explore", resp, err)
	if err != nil {
		return err
	}

	var explore exploreResponse
	if err := decodeGuarded(body, &explore); err != nil {
		return fmt.Errorf("explore decode error: %w", err)
	}

	g.keywords = slices.Clone(query.Keywords)
	g.widgets = explore.Widgets
	log.Debug().Strs("keywords", g.keywords).Int("widgets", len(g.widgets)).Msg("trends payload built")
	return nil
}

// InterestOverTime returns the timeline indexed by date, one column per
// keyword plus the isPartial flag column.
func (g *GoogleTrendsClient) InterestOverTime(ctx context.Context) (*model.Table, error) {
	if g.widgets == nil {
		return nil, customerrors.ErrPayloadMissing
	}
	idx := slices.IndexFunc(g.widgets, func(w exploreWidget) bool { return w.ID == timeseriesWidget })
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", customerrors.ErrWidgetMissing, timeseriesWidget)
	}

	body, err := g.fetchWidget(ctx, "interest_over_time", interestOverTimePath, g.widgets[idx])
	if err != nil {
		return nil, err
	}

	var timeline timelineResponse
	if err := decodeGuarded(body, &timeline); err != nil {
		return nil, fmt.Errorf("timeline decode error: %w", err)
	}

	type datedPoint struct {
		at    time.Time
		point timelinePoint
	}
	points := make([]datedPoint, 0, len(timeline.Default.TimelineData))
	for _, p := range timeline.Default.TimelineData {
		at, err := util.ParseUnixSeconds(p.Time)
		if err != nil {
			return nil, fmt.Errorf("timeline point has invalid time %q: %w", p.Time, err)
		}
		points = append(points, datedPoint{at: at, point: p})
	}
	slices.SortStableFunc(points, func(a, b datedPoint) int { return a.at.Compare(b.at) })

	table := &model.Table{
		Index:   dateColumn,
		Columns: append(slices.Clone(g.keywords), partialColumn),
		Rows:    make([]model.TableRow, 0, len(points)),
	}
	for _, dp := range points {
		values := make([]any, 0, len(table.Columns))
		for i := range g.keywords {
			if i < len(dp.point.Value) {
				values = append(values, dp.point.Value[i])
			} else {
				values = append(values, nil)
			}
		}
		values = append(values, dp.point.IsPartial)
		table.Rows = append(table.Rows, model.TableRow{Index: util.FormatTimeline(dp.at), Values: values})
	}
	return table, nil
}

// RelatedQueries returns the top and rising tables for every keyword the
// provider produced a related-queries widget for.
func (g *GoogleTrendsClient) RelatedQueries(ctx context.Context) (map[string]model.RelatedTables, error) {
	if g.widgets == nil {
		return nil, customerrors.ErrPayloadMissing
	}

	result := make(map[string]model.RelatedTables)
	for _, widget := range g.widgets {
		if !strings.Contains(widget.ID, relatedQueriesWidget) {
			continue
		}

		var req relatedWidgetRequest
		if err := json.Unmarshal(widget.Request, &req); err != nil {
			return nil, fmt.Errorf("related widget request decode error: %w", err)
		}
		restriction := req.Restriction.ComplexKeywordsRestriction.Keyword
		if len(restriction) == 0 {
			return nil, fmt.Errorf("related widget %s has no keyword restriction", widget.ID)
		}
		kw := restriction[0].Value

		body, err := g.fetchWidget(ctx, "related_queries", relatedQueriesPath, widget)
		if err != nil {
			return nil, err
		}

		var related relatedResponse
		if err := decodeGuarded(body, &related); err != nil {
			return nil, fmt.Errorf("related queries decode error: %w", err)
		}

		lists := related.Default.RankedList
		result[kw] = model.RelatedTables{
			Top:    rankedTable(lists, 0),
			Rising: rankedTable(lists, 1),
		}
	}
	return result, nil
}

// warmUp loads the explore page so the session carries the NID cookie.
func (g *GoogleTrendsClient) warmUp(ctx context.Context) error {
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8").
		SetQueryParam("geo", util.CountryFromHL(g.hl)).
		Get(warmUpPath)
	if err != nil {
		return fmt.Errorf("warmup failed: %w", err)
	}
	if !resp.IsSuccess() {
		log.Debug().Int("status", resp.StatusCode()).Msg("trends warmup returned non-2xx, continuing without cookie")
	}
	return nil
}

func (g *GoogleTrendsClient) fetchWidget(ctx context.Context, op, path string, widget exploreWidget) ([]byte, error) {
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"req":   string(widget.Request),
			"token": widget.Token,
			"tz":    strconv.Itoa(g.tz),
		}).
		Get(path)
	return checkResponse(op, resp, err)
}

func rankedTable(lists []rankedList, i int) *model.Table {
	if i >= len(lists) || len(lists[i].RankedKeyword) == 0 {
		return nil
	}
	table := &model.Table{
		Columns: []string{"query", "value"},
		Rows:    make([]model.TableRow, 0, len(lists[i].RankedKeyword)),
	}
	for _, rk := range lists[i].RankedKeyword {
		table.Rows = append(table.Rows, model.TableRow{Values: []any{rk.Query, rk.Value}})
	}
	return table
}

func checkResponse(op string, resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", op, err)
	}
	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%s rate limited by provider (status 429)", op)
	case !resp.IsSuccess():
		return nil, fmt.Errorf("%s returned status %d", op, resp.StatusCode())
	}
	return resp.Body(), nil
}

// decodeGuarded strips the anti-XSSI prefix (")]}'" and variants) and decodes
// the JSON document that follows.
func decodeGuarded(body []byte, target any) error {
	start := bytes.IndexByte(body, '{')
	if start < 0 {
		return fmt.Errorf("no JSON object in response")
	}
	return json.Unmarshal(body[start:], target)
}
