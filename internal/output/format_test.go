package output

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
)

type row struct {
	Name   string `json:"name"`
	Sites  int    `json:"sites"`
	Hidden string `json:"-"`
}

type tree []string

func (t tree) WriteText(w io.Writer) error {
	for _, name := range t {
		if _, err := fmt.Fprintf(w, "* %s\n", name); err != nil {
			return err
		}
	}
	return nil
}

func printed(t *testing.T, ctx context.Context, format Format, data any) string {
	t.Helper()
	var buf bytes.Buffer
	if err := NewPrinter(&buf, format).Print(ctx, data); err != nil {
		t.Fatalf("Print(%s): %v", format, err)
	}
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, " JSON ": FormatJSON, "yaml": FormatYAML, "ndjson": FormatNDJSON, "table": FormatTable} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestPrintJSONWithQueryOverStructs(t *testing.T) {
	ctx := WithOptions(context.Background(), Options{Query: ".[].name"})
	got := printed(t, ctx, FormatJSON, []row{{Name: "Dev", Sites: 2}, {Name: "News", Sites: 1}})
	if got != "\"Dev\"\n\"News\"\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrintJSONDoesNotEscapeHTML(t *testing.T) {
	got := printed(t, context.Background(), FormatJSON, map[string]string{"url": "https://a.example/?a=1&b=2"})
	if !strings.Contains(got, "a=1&b=2") {
		t.Fatalf("expected unescaped ampersand, got %q", got)
	}
}

func TestPrintInvalidQuery(t *testing.T) {
	ctx := WithOptions(context.Background(), Options{Query: ".["})
	err := NewPrinter(io.Discard, FormatJSON).Print(ctx, []int{1})
	if err == nil || !strings.Contains(err.Error(), "invalid --query") {
		t.Fatalf("expected invalid query error, got %v", err)
	}
}

func TestPrintNDJSON(t *testing.T) {
	got := printed(t, context.Background(), FormatNDJSON, []row{{Name: "a"}, {Name: "b"}})
	if got != "{\"name\":\"a\",\"sites\":0}\n{\"name\":\"b\",\"sites\":0}\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrintYAMLWithQuery(t *testing.T) {
	ctx := WithOptions(context.Background(), Options{Query: ".sites"})
	got := printed(t, ctx, FormatYAML, row{Name: "a", Sites: 3})
	if got != "3\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrintTextUsesTexter(t *testing.T) {
	got := printed(t, context.Background(), FormatText, tree{"a", "b"})
	if got != "* a\n* b\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrintTextStructSkipsHidden(t *testing.T) {
	got := printed(t, context.Background(), FormatText, row{Name: "a", Sites: 1, Hidden: "x"})
	if got != "name: a\nsites: 1\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestPrintTable(t *testing.T) {
	got := printed(t, context.Background(), FormatTable, []row{{Name: "Dev", Sites: 12}})
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "name") || !strings.HasPrefix(lines[1], "Dev") {
		t.Fatalf("unexpected table %q", got)
	}
	if strings.Contains(got, "Hidden") {
		t.Fatalf("hidden column printed: %q", got)
	}
}

func TestPrintTableRequiresList(t *testing.T) {
	if err := NewPrinter(io.Discard, FormatTable).Print(context.Background(), row{}); err == nil {
		t.Fatalf("expected error for non-list table output")
	}
}

func TestApplyLimit(t *testing.T) {
	ctx := WithOptions(context.Background(), Options{Limit: 1})
	got := printed(t, ctx, FormatNDJSON, []row{{Name: "a"}, {Name: "b"}})
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("expected one line, got %q", got)
	}

	table := ApplyLimit(ctx, Table{Headers: []string{"h"}, Rows: [][]string{{"1"}, {"2"}}}).(Table)
	if len(table.Rows) != 1 || len(table.Headers) != 1 {
		t.Fatalf("unexpected table %+v", table)
	}

	if got := ApplyLimit(ctx, tree{"a", "b"}); len(got.(tree)) != 1 {
		t.Fatalf("expected limited tree, got %v", got)
	}
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()
	if FormatFromContext(ctx) != FormatText || QueryFromContext(ctx) != "" || LimitFromContext(ctx) != 0 {
		t.Fatalf("unexpected defaults")
	}
}

func TestWithFormatKeepsQuery(t *testing.T) {
	ctx := WithOptions(context.Background(), Options{Query: ".name", Limit: 2})
	ctx = WithFormat(ctx, FormatYAML)
	opts := OptionsFromContext(ctx)
	if opts.Format != FormatYAML || opts.Query != ".name" || opts.Limit != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
}
