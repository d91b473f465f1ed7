package model

import (
	"slices"
	"strings"

	"github.com/saandeepkondury/py-trends-API/customerrors"
)

const (
	DefaultTimeframe = "today 12-m"
	MinKeywords      = 1
	MaxKeywords      = 5
)

// Gprop values accepted by the provider. The empty value means web search.
const (
	GpropWeb      = ""
	GpropNews     = "news"
	GpropImages   = "images"
	GpropYoutube  = "youtube"
	GpropShopping = "froogle"
)

var gpropValues = []string{GpropWeb, GpropNews, GpropImages, GpropYoutube, GpropShopping}

// TrendQuery is the body accepted by both trends endpoints.
type TrendQuery struct {
	Keywords  []string `json:"keywords" minItems:"1" maxItems:"5" doc:"Search terms to compare (1 to 5)"`
	Timeframe string   `json:"timeframe,omitempty" default:"today 12-m" doc:"Provider timeframe, e.g. now 7-d or today 5-y" example:"today 12-m"`
	Geo       string   `json:"geo,omitempty" doc:"Region code, empty for worldwide" example:"US"`
	Gprop     string   `json:"gprop,omitempty" enum:",news,images,youtube,froogle" doc:"Search property filter, empty for web search"`
	Cat       int      `json:"cat,omitempty" default:"0" doc:"Provider category id"`
}

// WithDefaults returns a copy of q with the provider defaults filled in.
func (q TrendQuery) WithDefaults() TrendQuery {
	out := q
	out.Keywords = slices.Clone(q.Keywords)
	if out.Timeframe == "" {
		out.Timeframe = DefaultTimeframe
	}
	return out
}

func (q TrendQuery) Validate() error {
	if len(q.Keywords) < MinKeywords || len(q.Keywords) > MaxKeywords {
		return customerrors.ErrKeywordCount
	}
	if slices.ContainsFunc(q.Keywords, func(kw string) bool { return strings.TrimSpace(kw) == "" }) {
		return customerrors.ErrEmptyKeyword
	}
	if !slices.Contains(gpropValues, q.Gprop) {
		return customerrors.ErrInvalidGprop
	}
	return nil
}

// QueryMeta echoes the validated query back to the caller.
type QueryMeta struct {
	Keywords  []string `json:"keywords"`
	Timeframe string   `json:"timeframe"`
	Geo       string   `json:"geo"`
	Gprop     string   `json:"gprop"`
	Cat       int      `json:"cat"`
}

type InterestOverTimeMeta struct {
	QueryMeta
	IsPartialAny bool `json:"isPartialAny"`
}

// InterestOverTimeBody carries either Meta (data present) or IsPartial (no data).
type InterestOverTimeBody struct {
	Data      []Record              `json:"data"`
	Meta      *InterestOverTimeMeta `json:"meta,omitempty"`
	IsPartial *bool                 `json:"isPartial,omitempty"`
}

type RelatedSections struct {
	Top    []Record `json:"top"`
	Rising []Record `json:"rising"`
}

type RelatedQueriesBody struct {
	Data map[string]RelatedSections `json:"data"`
	Meta QueryMeta                  `json:"meta"`
}

// --- Huma Structs ---

type TrendQueryInput struct {
	Body TrendQuery
}

type InterestOverTimeResponse struct {
	Body InterestOverTimeBody
}

type RelatedQueriesResponse struct {
	Body RelatedQueriesBody
}
