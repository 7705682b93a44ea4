package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/itchyny/gojq"
	"gopkg.in/yaml.v3"
)

// Format represents the output format type.
type Format string

const (
	// FormatText is human-readable output (default).
	FormatText Format = "text"
	// FormatJSON is pretty-printed JSON format.
	FormatJSON Format = "json"
	// FormatNDJSON is newline-delimited JSON format.
	FormatNDJSON Format = "ndjson"
	// FormatTable is tabular format for lists.
	FormatTable Format = "table"
	// FormatYAML is YAML format.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a string to a Format type.
// Empty string defaults to FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatNDJSON:
		return FormatNDJSON, nil
	case FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", errors.New("invalid --output format (expected text|json|ndjson|table|yaml)")
	}
}

// IsStructured reports whether the format is machine-readable structured output.
func IsStructured(format Format) bool {
	switch format {
	case FormatJSON, FormatNDJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// Texter is implemented by values with their own human-readable rendering.
type Texter interface {
	WriteText(w io.Writer) error
}

// Tabler is implemented by values that know how to lay themselves out as a
// table.
type Tabler interface {
	Table() Table
}

// Table is a header row plus data rows.
type Table struct {
	Headers []string   `json:"headers,omitempty" yaml:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// Printer handles output formatting across different formats.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a new Printer that writes to w in the given format.
func NewPrinter(w io.Writer, format Format) *Printer {
	return &Printer{
		w:      w,
		format: format,
	}
}

// Print outputs data in the configured format. A jq query in ctx filters
// structured formats.
func (p *Printer) Print(ctx context.Context, data any) error {
	if data == nil {
		return nil
	}

	data = ApplyLimit(ctx, data)

	switch p.format {
	case FormatJSON:
		return p.printJSON(ctx, data)
	case FormatNDJSON:
		return p.printNDJSON(ctx, data)
	case FormatYAML:
		return p.printYAML(ctx, data)
	case FormatTable:
		return p.printTable(data)
	case FormatText:
		return p.printText(data)
	default:
		return fmt.Errorf("unsupported format: %s", p.format)
	}
}

// Normalize converts data to the plain maps, slices and scalars produced by
// encoding/json, which is what gojq operates on.
func Normalize(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding output: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encoding output: %w", err)
	}
	return out, nil
}

// Query runs a jq expression over data and returns every result.
func Query(query string, data any) ([]any, error) {
	parsed, err := gojq.Parse(query)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("invalid --query: %w", err)
	}
	input, err := Normalize(data)
	if err != nil {
		return nil, err
	}

	var results []any
	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, fmt.Errorf("query error: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

func newJSONEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// filtered runs the jq query in ctx over data. ok is false when no query
// is set.
func filtered(ctx context.Context, data any) (results []any, ok bool, err error) {
	query := QueryFromContext(ctx)
	if query == "" {
		return nil, false, nil
	}
	results, err = Query(query, data)
	return results, true, err
}

type encoder interface {
	Encode(v any) error
}

func encodeAll(enc encoder, values []any) error {
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// printJSON writes indented JSON, or one compact document per jq result.
func (p *Printer) printJSON(ctx context.Context, data any) error {
	enc := newJSONEncoder(p.w)
	results, ok, err := filtered(ctx, data)
	if err != nil {
		return err
	}
	if ok {
		return encodeAll(enc, results)
	}
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// printNDJSON writes one JSON line per list element, or per jq result.
func (p *Printer) printNDJSON(ctx context.Context, data any) error {
	enc := newJSONEncoder(p.w)
	results, ok, err := filtered(ctx, data)
	if err != nil {
		return err
	}
	if ok {
		return encodeAll(enc, results)
	}

	v := indirect(reflect.ValueOf(data))
	if !v.IsValid() {
		return nil
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return enc.Encode(data)
	}
	for i := range v.Len() {
		if err := enc.Encode(v.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// printYAML writes YAML. Each jq result becomes its own document.
func (p *Printer) printYAML(ctx context.Context, data any) error {
	results, ok, err := filtered(ctx, data)
	if err != nil {
		return err
	}
	if !ok {
		results = []any{data}
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := encodeAll(enc, results); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}

// indirect follows pointers, returning the zero Value for nil.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

// printText writes Texter values with their own rendering, maps and structs
// as "key: value" lines, lists one item per line, and scalars as is.
func (p *Printer) printText(data any) error {
	if t, ok := data.(Texter); ok {
		return t.WriteText(p.w)
	}

	v := indirect(reflect.ValueOf(data))
	if !v.IsValid() {
		return nil
	}

	var lines []string
	switch v.Kind() {
	case reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, key := range keys {
			lines = append(lines, fmt.Sprintf("%v: %v", key.Interface(), v.MapIndex(key).Interface()))
		}
	case reflect.Struct:
		for _, c := range columns(v.Type()) {
			field := v.Field(c.index)
			if c.omitEmpty && field.IsZero() {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: %v", c.name, field.Interface()))
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			lines = append(lines, fmt.Sprint(v.Index(i).Interface()))
		}
	default:
		lines = append(lines, fmt.Sprint(v.Interface()))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printTable(data any) error {
	switch t := data.(type) {
	case Table:
		return p.writeTable(t)
	case Tabler:
		return p.writeTable(t.Table())
	}

	v := indirect(reflect.ValueOf(data))
	if !v.IsValid() {
		return nil
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Errorf("table format requires a list of items")
	}
	if v.Len() == 0 {
		return nil
	}
	return p.writeTable(buildTable(v))
}

func (p *Printer) writeTable(t Table) error {
	w := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// column is an exported struct field visible in JSON.
type column struct {
	name      string
	index     int
	omitEmpty bool
}

func columns(t reflect.Type) []column {
	var out []column
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		name, opts, _ := strings.Cut(tag, ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		out = append(out, column{name: name, index: i, omitEmpty: strings.Contains(opts, "omitempty")})
	}
	return out
}

// buildTable lays out a list with one column per field of its first
// element. Lists of anything but structs get a single "value" column.
func buildTable(v reflect.Value) Table {
	first := indirect(v.Index(0))
	if !first.IsValid() || first.Kind() != reflect.Struct {
		t := Table{Headers: []string{"value"}}
		for i := range v.Len() {
			t.Rows = append(t.Rows, []string{fmt.Sprint(v.Index(i).Interface())})
		}
		return t
	}

	cols := columns(first.Type())
	t := Table{}
	for _, c := range cols {
		t.Headers = append(t.Headers, c.name)
	}
	for i := range v.Len() {
		item := indirect(v.Index(i))
		if !item.IsValid() || item.Type() != first.Type() {
			t.Rows = append(t.Rows, []string{fmt.Sprint(v.Index(i).Interface())})
			continue
		}
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			row = append(row, fmt.Sprint(item.Field(c.index).Interface()))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
