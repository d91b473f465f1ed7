package service

import "github.com/saandeepkondury/py-trends-API/model"

const partialColumn = "isPartial"

// NormalizeTimeline flattens a timeline table into one record per row with the
// index first and the isPartial column dropped. The second result reports
// whether any row was flagged partial.
func NormalizeTimeline(t *model.Table) ([]model.Record, bool) {
	if t.Empty() {
		return []model.Record{}, false
	}

	partialIdx := t.ColumnIndex(partialColumn)
	anyPartial := false
	records := make([]model.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		var rec model.Record
		if t.Index != "" {
			rec.Set(t.Index, row.Index)
		}
		for i, col := range t.Columns {
			v := valueAt(row.Values, i)
			if i == partialIdx {
				if flagged, _ := v.(bool); flagged {
					anyPartial = true
				}
				continue
			}
			rec.Set(col, v)
		}
		records = append(records, rec)
	}
	return records, anyPartial
}

// NormalizeRecords converts a table to row records, preserving row and column
// order. A nil table yields an empty, non-nil slice.
func NormalizeRecords(t *model.Table) []model.Record {
	if t == nil {
		return []model.Record{}
	}
	records := make([]model.Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		var rec model.Record
		if t.Index != "" {
			rec.Set(t.Index, row.Index)
		}
		for i, col := range t.Columns {
			rec.Set(col, valueAt(row.Values, i))
		}
		records = append(records, rec)
	}
	return records
}

func NormalizeRelated(related map[string]model.RelatedTables) map[string]model.RelatedSections {
	out := make(map[string]model.RelatedSections, len(related))
	for kw, tables := range related {
		out[kw] = model.RelatedSections{
			Top:    NormalizeRecords(tables.Top),
			Rising: NormalizeRecords(tables.Rising),
		}
	}
	return out
}

func valueAt(values []any, i int) any {
	if i < len(values) {
		return values[i]
	}
	return nil
}
