package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/danielgtaylor/huma/v2"
)

// Table is the tabular shape returned by the trends provider. Index names the
// row index column; it is empty for tables whose rows are only positional.
type Table struct {
	Index   string
	Columns []string
	Rows    []TableRow
}

// TableRow values are aligned with Table.Columns.
type TableRow struct {
	Index  any
	Values []any
}

func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// ColumnIndex returns the position of name in Columns, or -1.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	return slices.Index(t.Columns, name)
}

// RelatedTables holds the two sections the provider may return per keyword.
// Either may be nil.
type RelatedTables struct {
	Top    *Table
	Rising *Table
}

// Record is a flat row that keeps its keys in insertion order when encoded.
type Record struct {
	keys   []string
	values map[string]any
}

func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

func (r Record) Keys() []string {
	return slices.Clone(r.keys)
}

func (r Record) Len() int {
	return len(r.keys)
}

func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, fmt.Errorf("encoding record field %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Schema documents Record as a free-form object in the OpenAPI output.
func (Record) Schema(r huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:                 huma.TypeObject,
		Description:          "One table row keyed by column name",
		AdditionalProperties: true,
	}
}
