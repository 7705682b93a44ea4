package discover

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func touch(t *testing.T, dir, name string, mtime time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("<DL><p></DL><p>"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
}

func TestNameTimestamp(t *testing.T) {
	tests := []struct {
		name string
		want time.Time
		ok   bool
	}{
		{"selective-bookmarks-2026-01-24T07-31-00.html", time.Date(2026, 1, 24, 7, 31, 0, 0, time.UTC), true},
		{"bookmarks_20260124.html", time.Date(2026, 1, 24, 0, 0, 0, 0, time.UTC), true},
		{"dir/bookmarks_2025-12-31T23-59-59.html", time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), true},
		{"bookmarks.html", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := NameTimestamp(tt.name)
		if ok != tt.ok || !got.Equal(tt.want) {
			t.Errorf("NameTimestamp(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLatestPrefersNameTimestamp(t *testing.T) {
	dir := t.TempDir()
	old := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	// Same mtime everywhere, as after a fresh git checkout.
	touch(t, dir, "bookmarks_20250101.html", old)
	touch(t, dir, "selective-bookmarks-2026-01-24T07-31-00.html", old)
	touch(t, dir, "notes.txt", recent)

	got, err := Latest(dir)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.Name != "selective-bookmarks-2026-01-24T07-31-00.html" {
		t.Fatalf("unexpected latest file %q", got.Name)
	}
	if !got.FromName {
		t.Fatalf("expected name-derived timestamp")
	}
}

func TestCandidatesFallBackToModTime(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.HTML", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	touch(t, dir, "b.html", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))

	got, err := Candidates(dir)
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if len(got) != 2 || got[0].Name != "b.html" || got[1].Name != "a.HTML" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].FromName {
		t.Fatalf("expected mtime-derived timestamp")
	}
}

func TestCandidatesTieBrokenByName(t *testing.T) {
	dir := t.TempDir()
	same := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	touch(t, dir, "zeta.html", same)
	touch(t, dir, "alpha.html", same)

	got, err := Latest(dir)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if got.Name != "alpha.html" {
		t.Fatalf("expected alpha.html, got %q", got.Name)
	}
}

func TestLatestMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "bookmarks")

	_, err := Latest(dir)
	var noFiles NoFilesError
	if !errors.As(err, &noFiles) {
		t.Fatalf("expected NoFilesError, got %v", err)
	}
	if !noFiles.Created {
		t.Fatalf("expected directory to be created")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected directory to exist: %v", err)
	}
}

func TestLatestEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.md", time.Now())

	_, err := Latest(dir)
	var noFiles NoFilesError
	if !errors.As(err, &noFiles) || noFiles.Created {
		t.Fatalf("expected NoFilesError without creation, got %v", err)
	}
}
