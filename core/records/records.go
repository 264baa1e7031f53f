package records

import "context"

// Fields is the schemaless field payload of a record.
type Fields map[string]any

// Record is one row in a records-store table.
type Record struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

// Update pairs a record id with the fields to overwrite on it.
type Update struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

// SelectOptions narrows a table scan.
type SelectOptions struct {
	Filter     Filter
	MaxRecords int
	Fields     []string
}

// Store is the records-store contract every repository depends on. The HTTP
// client implements it; tests swap in an in-memory fake.
type Store interface {
	Select(ctx context.Context, table string, opts SelectOptions) ([]Record, error)
	Create(ctx context.Context, table string, fields []Fields) ([]Record, error)
	Update(ctx context.Context, table string, updates []Update) ([]Record, error)
}

// String helpers over Fields. The store returns untyped JSON, so repositories
// go through these instead of sprinkling type assertions.

func (f Fields) Str(key string) string {
	if v, ok := f[key].(string); ok {
		return v
	}
	return ""
}

func (f Fields) Bool(key string) bool {
	if v, ok := f[key].(bool); ok {
		return v
	}
	return false
}

func (f Fields) Float(key string) float64 {
	switch v := f[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// StrSlice reads a linked-record field, which the store returns as an array
// of record ids.
func (f Fields) StrSlice(key string) []string {
	switch v := f[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return nil
}

// FirstStr reads a lookup field that may surface as either a scalar or a
// single-element array.
func (f Fields) FirstStr(key string) string {
	if s := f.Str(key); s != "" {
		return s
	}
	if vs := f.StrSlice(key); len(vs) > 0 {
		return vs[0]
	}
	return ""
}
