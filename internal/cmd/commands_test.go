package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/salmonumbrella/menav-bookmarks/internal/bookmarks"
	"github.com/salmonumbrella/menav-bookmarks/internal/server"
)

func TestParseJSONQuery(t *testing.T) {
	file := writeTestFile(t, filepath.Join(t.TempDir(), "bookmarks.html"), sampleExport)

	res := runCLI(t, cliRun{args: []string{"parse", file, "-o", "json", "--query", ".categories[].name"}})
	if res.err != nil {
		t.Fatalf("parse: %v\n%s", res.err, res.stderr)
	}
	if res.stdout != "\"根目录书签\"\n\"Dev\"\n" {
		t.Fatalf("unexpected output %q", res.stdout)
	}
}

func TestParseDefaultsToJSONWhenPiped(t *testing.T) {
	file := writeTestFile(t, filepath.Join(t.TempDir(), "bookmarks.html"), sampleExport)

	res := runCLI(t, cliRun{args: []string{"parse", file}})
	if res.err != nil {
		t.Fatalf("parse: %v", res.err)
	}
	var page bookmarks.Page
	if err := json.Unmarshal([]byte(res.stdout), &page); err != nil {
		t.Fatalf("expected JSON page: %v\n%s", err, res.stdout)
	}
	if page.Title != bookmarks.DefaultTitle || len(page.Categories) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if got := page.Categories[1].Subcategories[0].Name; got != "Docs" {
		t.Fatalf("expected Docs under subcategories, got %q", got)
	}
}

func TestParseStdinText(t *testing.T) {
	res := runCLI(t, cliRun{args: []string{"parse", "-", "-o", "text"}, stdin: sampleExport})
	if res.err != nil {
		t.Fatalf("parse: %v", res.err)
	}
	for _, want := range []string{"我的书签\n", "  Dev (1)\n", "    Docs (1)\n", "- Go  https://go.dev\n"} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("expected %q in output:\n%s", want, res.stdout)
		}
	}
}

func TestParseStats(t *testing.T) {
	file := writeTestFile(t, filepath.Join(t.TempDir(), "bookmarks.html"), sampleExport)

	res := runCLI(t, cliRun{args: []string{"parse", file, "--stats", "-o", "json"}})
	if res.err != nil {
		t.Fatalf("parse: %v", res.err)
	}
	var stats map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &stats); err != nil {
		t.Fatalf("parse stats: %v", err)
	}
	if stats["source"] != "toolbar" || stats["categories"] != float64(3) || stats["sites"] != float64(3) {
		t.Fatalf("unexpected stats %v", stats)
	}
	if stats["pruned_folders"] != float64(1) || stats["root_sites"] != float64(1) {
		t.Fatalf("unexpected stats %v", stats)
	}
}

func TestParseFlatTable(t *testing.T) {
	file := writeTestFile(t, filepath.Join(t.TempDir(), "bookmarks.html"), sampleExport)

	res := runCLI(t, cliRun{args: []string{"parse", file, "-o", "table"}})
	if res.err != nil {
		t.Fatalf("parse: %v", res.err)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 4 || !strings.HasPrefix(lines[0], "PATH") || !strings.HasPrefix(lines[3], "Dev / Docs") {
		t.Fatalf("unexpected table:\n%s", res.stdout)
	}
}

func TestParseMaxDepthFromConfig(t *testing.T) {
	dir := t.TempDir()
	file := writeTestFile(t, filepath.Join(dir, "bookmarks.html"), sampleExport)
	cfg := writeTestFile(t, filepath.Join(dir, "config.yaml"), "max_depth: 1\n")

	res := runCLI(t, cliRun{args: []string{"--config", cfg, "parse", file, "--stats", "-o", "json"}})
	if res.err != nil {
		t.Fatalf("parse: %v", res.err)
	}
	var stats map[string]any
	if err := json.Unmarshal([]byte(res.stdout), &stats); err != nil {
		t.Fatalf("parse stats: %v", err)
	}
	if stats["dropped_folders"] != float64(1) || stats["dropped_sites"] != float64(1) {
		t.Fatalf("expected Docs dropped, got %v", stats)
	}
	if !strings.Contains(res.stderr, "depth limit") {
		t.Fatalf("expected warning on stderr, got %q", res.stderr)
	}
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "bookmarks", "bookmarks_20250101.html"), sampleExport)
	writeTestFile(t, filepath.Join(dir, "bookmarks", "bookmarks_20260101.html"), sampleExport)

	res := runCLI(t, cliRun{args: []string{"-C", dir, "latest", "-o", "json"}})
	if res.err != nil {
		t.Fatalf("latest: %v", res.err)
	}
	var got struct {
		Name     string `json:"name"`
		FromName bool   `json:"from_name"`
	}
	if err := json.Unmarshal([]byte(res.stdout), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "bookmarks_20260101.html" || !got.FromName {
		t.Fatalf("unexpected latest %+v", got)
	}

	res = runCLI(t, cliRun{args: []string{"-C", dir, "latest", "--all", "-o", "ndjson"}})
	if res.err != nil {
		t.Fatalf("latest --all: %v", res.err)
	}
	if strings.Count(res.stdout, "\n") != 2 {
		t.Fatalf("expected two candidates, got %q", res.stdout)
	}
}

func TestLatestUsesEnvDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "exports", "a.html"), sampleExport)

	res := runCLI(t, cliRun{
		args: []string{"-C", dir, "latest", "-o", "json", "--query", ".name"},
		env:  map[string]string{"MENAV_BOOKMARKS_DIR": "exports"},
	})
	if res.err != nil {
		t.Fatalf("latest: %v", res.err)
	}
	if strings.TrimSpace(res.stdout) != `"a.html"` {
		t.Fatalf("unexpected output %q", res.stdout)
	}
}

func TestRender(t *testing.T) {
	file := writeTestFile(t, filepath.Join(t.TempDir(), "bookmarks.html"), sampleExport)

	res := runCLI(t, cliRun{args: []string{"render", file, "--document"}})
	if res.err != nil {
		t.Fatalf("render: %v", res.err)
	}
	if !strings.HasPrefix(res.stdout, "<!DOCTYPE html>") {
		t.Fatalf("expected document, got %q", res.stdout[:min(40, len(res.stdout))])
	}
	if !strings.Contains(res.stdout, `<i class="fab fa-github"></i>`) {
		t.Fatalf("expected github icon in output")
	}
}

func TestServeWiresServer(t *testing.T) {
	file := writeTestFile(t, filepath.Join(t.TempDir(), "bookmarks.html"), sampleExport)

	var gotAddr string
	var stats *httptest.ResponseRecorder
	prev := runServer
	t.Cleanup(func() { runServer = prev })
	runServer = func(ctx context.Context, srv *server.Server, addr string) error {
		gotAddr = addr
		stats = httptest.NewRecorder()
		srv.ServeHTTP(stats, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
		return nil
	}

	res := runCLI(t, cliRun{args: []string{"serve", file, "--addr", "127.0.0.1:9999", "--quiet"}})
	if res.err != nil {
		t.Fatalf("serve: %v", res.err)
	}
	if gotAddr != "127.0.0.1:9999" {
		t.Fatalf("unexpected addr %q", gotAddr)
	}
	if stats == nil || stats.Code != http.StatusOK || !strings.Contains(stats.Body.String(), `"sites":3`) {
		t.Fatalf("unexpected stats response %+v", stats)
	}
}

func TestServeDefaultAddrFromConfig(t *testing.T) {
	file := writeTestFile(t, filepath.Join(t.TempDir(), "bookmarks.html"), sampleExport)

	var gotAddr string
	prev := runServer
	t.Cleanup(func() { runServer = prev })
	runServer = func(ctx context.Context, srv *server.Server, addr string) error {
		gotAddr = addr
		return nil
	}

	if res := runCLI(t, cliRun{args: []string{"serve", file, "--quiet"}}); res.err != nil {
		t.Fatalf("serve: %v", res.err)
	}
	if gotAddr != "127.0.0.1:8080" {
		t.Fatalf("unexpected addr %q", gotAddr)
	}
}

func TestMissingFileReportsJSONError(t *testing.T) {
	res := runCLI(t, cliRun{args: []string{"parse", filepath.Join(t.TempDir(), "missing.html"), "-o", "json"}})
	if res.err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(res.err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", res.err)
	}
	envelope := buildErrorEnvelope(res.err)
	if envelope.Error.Type != "not_found" {
		t.Fatalf("unexpected envelope %+v", envelope)
	}
}

func TestNewLoggerLevels(t *testing.T) {
	ctx := context.Background()
	if newLogger(nil, false, false).Enabled(ctx, -4) {
		t.Fatalf("debug should be off by default")
	}
	if !newLogger(nil, true, false).Enabled(ctx, -4) {
		t.Fatalf("debug should be on with --debug")
	}
	if newLogger(nil, false, true).Enabled(ctx, 0) {
		t.Fatalf("info should be off with --quiet")
	}
}

func TestSetVersionInfo(t *testing.T) {
	origVersion, origCommit, origDate := version, commit, date
	defer SetVersionInfo(origVersion, origCommit, origDate)

	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	if version != "1.2.3" || commit != "abc123" || date != "2026-01-01" {
		t.Fatalf("unexpected version info %s %s %s", version, commit, date)
	}

	res := runCLI(t, cliRun{args: []string{"--version"}})
	if res.err != nil {
		t.Fatalf("version: %v", res.err)
	}
	if res.stdout != "menav-bookmarks version 1.2.3 (commit: abc123, built: 2026-01-01)\n" {
		t.Fatalf("unexpected version output %q", res.stdout)
	}
}
