package service

import (
	"encoding/json"
	"testing"

	"github.com/saandeepkondury/py-trends-API/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timelineFixture() *model.Table {
	return &model.Table{
		Index:   "date",
		Columns: []string{"python", "golang", "isPartial"},
		Rows: []model.TableRow{
			{Index: "2024-01-07T00:00:00", Values: []any{80.0, 45.0, false}},
			{Index: "2024-01-14T00:00:00", Values: []any{78.0, 47.0, true}},
		},
	}
}

func TestNormalizeTimeline(t *testing.T) {
	records, anyPartial := NormalizeTimeline(timelineFixture())

	assert.True(t, anyPartial)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"date", "python", "golang"}, records[0].Keys())

	out, err := json.Marshal(records)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"date":"2024-01-07T00:00:00","python":80,"golang":45},{"date":"2024-01-14T00:00:00","python":78,"golang":47}]`,
		string(out))
}

func TestNormalizeTimelineNoPartialRows(t *testing.T) {
	table := timelineFixture()
	table.Rows[1].Values[2] = false

	records, anyPartial := NormalizeTimeline(table)
	assert.False(t, anyPartial)
	assert.Len(t, records, 2)
}

func TestNormalizeTimelineWithoutPartialColumn(t *testing.T) {
	table := &model.Table{
		Index:   "date",
		Columns: []string{"go"},
		Rows:    []model.TableRow{{Index: "2024-01-07T00:00:00", Values: []any{10.0}}},
	}

	records, anyPartial := NormalizeTimeline(table)
	assert.False(t, anyPartial)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"date", "go"}, records[0].Keys())
}

func TestNormalizeTimelineEmpty(t *testing.T) {
	records, anyPartial := NormalizeTimeline(nil)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.False(t, anyPartial)
}

func TestNormalizeRecords(t *testing.T) {
	table := &model.Table{
		Columns: []string{"query", "value"},
		Rows: []model.TableRow{
			{Values: []any{"golang tutorial", 100.0}},
			{Values: []any{"golang generics", 42.0}},
		},
	}

	out, err := json.Marshal(NormalizeRecords(table))
	require.NoError(t, err)
	assert.Equal(t, `[{"query":"golang tutorial","value":100},{"query":"golang generics","value":42}]`, string(out))
}

func TestNormalizeRecordsShortRowPadsWithNull(t *testing.T) {
	table := &model.Table{
		Columns: []string{"query", "value"},
		Rows:    []model.TableRow{{Values: []any{"golang"}}},
	}

	out, err := json.Marshal(NormalizeRecords(table))
	require.NoError(t, err)
	assert.Equal(t, `[{"query":"golang","value":null}]`, string(out))
}

func TestNormalizeRelatedMissingSections(t *testing.T) {
	related := map[string]model.RelatedTables{
		"golang": {
			Top: &model.Table{
				Columns: []string{"query", "value"},
				Rows:    []model.TableRow{{Values: []any{"golang tutorial", 100.0}}},
			},
		},
		"rust": {},
	}

	got := NormalizeRelated(related)
	require.Len(t, got, 2)
	assert.Len(t, got["golang"].Top, 1)
	assert.NotNil(t, got["golang"].Rising)
	assert.Empty(t, got["golang"].Rising)

	out, err := json.Marshal(got["rust"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"top":[],"rising":[]}`, string(out))
}
