package model

import (
	"encoding/json"
	"testing"

	"github.com/saandeepkondury/py-trends-API/customerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrendQueryWithDefaults(t *testing.T) {
	q := TrendQuery{Keywords: []string{"go"}}
	got := q.WithDefaults()

	assert.Equal(t, DefaultTimeframe, got.Timeframe)
	assert.Equal(t, "", got.Geo)
	assert.Equal(t, "", got.Gprop)
	assert.Equal(t, 0, got.Cat)

	got.Keywords[0] = "rust"
	assert.Equal(t, "go", q.Keywords[0], "defaults must not alias the caller's keywords")
}

func TestTrendQueryWithDefaultsKeepsExplicitTimeframe(t *testing.T) {
	q := TrendQuery{Keywords: []string{"go"}, Timeframe: "now 7-d"}
	assert.Equal(t, "now 7-d", q.WithDefaults().Timeframe)
}

func TestTrendQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   TrendQuery
		wantErr error
	}{
		{"one keyword", TrendQuery{Keywords: []string{"a"}}, nil},
		{"five keywords", TrendQuery{Keywords: []string{"a", "b", "c", "d", "e"}}, nil},
		{"no keywords", TrendQuery{}, customerrors.ErrKeywordCount},
		{"six keywords", TrendQuery{Keywords: []string{"a", "b", "c", "d", "e", "f"}}, customerrors.ErrKeywordCount},
		{"blank keyword", TrendQuery{Keywords: []string{"a", " "}}, customerrors.ErrEmptyKeyword},
		{"shopping property", TrendQuery{Keywords: []string{"a"}, Gprop: GpropShopping}, nil},
		{"unknown property", TrendQuery{Keywords: []string{"a"}, Gprop: "maps"}, customerrors.ErrInvalidGprop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInterestOverTimeBodyShapes(t *testing.T) {
	noPartial := false
	empty, err := json.Marshal(InterestOverTimeBody{Data: []Record{}, IsPartial: &noPartial})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"isPartial":false}`, string(empty))

	var rec Record
	rec.Set("date", "2024-01-07T00:00:00")
	rec.Set("go", 12.0)
	full, err := json.Marshal(InterestOverTimeBody{
		Data: []Record{rec},
		Meta: &InterestOverTimeMeta{
			QueryMeta:    QueryMeta{Keywords: []string{"go"}, Timeframe: DefaultTimeframe},
			IsPartialAny: true,
		},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"data":[{"date":"2024-01-07T00:00:00","go":12}],
		"meta":{"keywords":["go"],"timeframe":"today 12-m","geo":"","gprop":"","cat":0,"isPartialAny":true}
	}`, string(full))
}
