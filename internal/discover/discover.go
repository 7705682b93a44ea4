// Package discover picks the bookmark export to import from a directory.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	// selective-bookmarks-2026-01-24T07-31-00.html
	isoStamp = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})T(\d{2})-(\d{2})-(\d{2})`)
	// bookmarks_20260124.html
	dateStamp = regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)
)

// Candidate is an export file with the timestamp used to rank it.
type Candidate struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	// FromName is true when Timestamp came from the file name rather than
	// its modification time.
	FromName bool `json:"from_name"`
}

// NoFilesError reports a directory without any export.
type NoFilesError struct {
	Dir     string
	Created bool
}

func (e NoFilesError) Error() string {
	if e.Created {
		return fmt.Sprintf("bookmarks directory %s did not exist and was created; no HTML bookmark files found", e.Dir)
	}
	return fmt.Sprintf("no HTML bookmark files found in %s", e.Dir)
}

// NameTimestamp extracts a UTC timestamp from a file name. It recognizes
// YYYY-MM-DDTHH-MM-SS first and falls back to YYYYMMDD.
func NameTimestamp(name string) (time.Time, bool) {
	base := filepath.Base(name)
	if m := isoStamp.FindStringSubmatch(base); m != nil {
		n := atoi(m[1:])
		return time.Date(n[0], time.Month(n[1]), n[2], n[3], n[4], n[5], 0, time.UTC), true
	}
	if m := dateStamp.FindStringSubmatch(base); m != nil {
		n := atoi(m[1:])
		return time.Date(n[0], time.Month(n[1]), n[2], 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

func atoi(parts []string) []int {
	out := make([]int, len(parts))
	for i, p := range parts {
		out[i], _ = strconv.Atoi(p)
	}
	return out
}

// Candidates lists the .html files in dir, newest first. Ties are broken by
// file name. A missing dir is created and yields NoFilesError.
func Candidates(dir string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading bookmarks directory: %w", err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating bookmarks directory: %w", err)
		}
		return nil, NoFilesError{Dir: dir, Created: true}
	}

	var out []Candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".html") {
			continue
		}
		c := Candidate{Name: entry.Name(), Path: filepath.Join(dir, entry.Name())}
		if ts, ok := NameTimestamp(entry.Name()); ok {
			c.Timestamp, c.FromName = ts, true
		} else {
			info, err := entry.Info()
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", c.Path, err)
			}
			c.Timestamp = info.ModTime()
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil, NoFilesError{Dir: dir}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Latest returns the newest export in dir.
func Latest(dir string) (Candidate, error) {
	candidates, err := Candidates(dir)
	if err != nil {
		return Candidate{}, err
	}
	return candidates[0], nil
}
