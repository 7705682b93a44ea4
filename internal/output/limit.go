package output

import (
	"context"
	"reflect"
)

// ApplyLimit truncates list output to the --limit value in ctx. Tables keep
// their headers. Other values pass through unchanged.
func ApplyLimit(ctx context.Context, data any) any {
	limit := LimitFromContext(ctx)
	if limit <= 0 || data == nil {
		return data
	}

	if t, ok := data.(Table); ok {
		if len(t.Rows) > limit {
			t.Rows = t.Rows[:limit]
		}
		return t
	}

	v := reflect.ValueOf(data)
	if v.Kind() != reflect.Slice || v.Len() <= limit {
		return data
	}
	return v.Slice(0, limit).Interface()
}
