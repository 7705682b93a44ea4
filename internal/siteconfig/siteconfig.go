// Package siteconfig prepares the site's user configuration directory and
// keeps the bookmarks page reachable from the site navigation.
package siteconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// InitSource tells how the user configuration directory came to exist.
type InitSource string

const (
	SourceExisting InitSource = "existing"
	SourceDefault  InitSource = "_default"
	SourceEmpty    InitSource = "empty"
)

// EnsureUserConfig makes sure userDir exists. When it is missing it is
// initialized as a full copy of defaultDir, or created empty when defaultDir
// is missing too.
func EnsureUserConfig(userDir, defaultDir string) (InitSource, error) {
	if exists(userDir) {
		return SourceExisting, nil
	}
	if exists(defaultDir) {
		if err := os.CopyFS(userDir, os.DirFS(defaultDir)); err != nil {
			return "", fmt.Errorf("copying %s to %s: %w", defaultDir, userDir, err)
		}
		return SourceDefault, nil
	}
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", userDir, err)
	}
	return SourceEmpty, nil
}

// EnsureSiteFile returns the path of userDir/site.yml, copying it from
// defaultDir when only the default exists. ok is false when neither exists.
func EnsureSiteFile(userDir, defaultDir string) (path string, ok bool, err error) {
	path = filepath.Join(userDir, "site.yml")
	if exists(path) {
		return path, true, nil
	}
	src := filepath.Join(defaultDir, "site.yml")
	data, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return path, false, nil
		}
		return path, false, fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return path, false, fmt.Errorf("creating %s: %w", userDir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return path, false, fmt.Errorf("writing %s: %w", path, err)
	}
	return path, true, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// NavEntry is a navigation item in site.yml.
type NavEntry struct {
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
	ID   string `json:"id" yaml:"id"`
}

// DefaultNavEntry is the entry pointing at the bookmarks page.
func DefaultNavEntry() NavEntry {
	return NavEntry{Name: "书签", Icon: "fas fa-bookmark", ID: "bookmarks"}
}

// Reason explains the outcome of a navigation patch.
type Reason string

const (
	ReasonAlreadyPresent     Reason = "already_present"
	ReasonNotObject          Reason = "site_yml_not_object"
	ReasonNavigationNotArray Reason = "navigation_not_array"
	ReasonAddedBlock         Reason = "added_navigation_block"
	ReasonUpdatedBlock       Reason = "updated_navigation_block"
	ReasonNoSiteFile         Reason = "no_site_yml"
	ReasonError              Reason = "error"
)

// PatchResult is the outcome of UpsertNav.
type PatchResult struct {
	Path    string `json:"path,omitempty" yaml:"path,omitempty"`
	Updated bool   `json:"updated" yaml:"updated"`
	Reason  Reason `json:"reason" yaml:"reason"`
}

// PatchError wraps a failure to read, parse or write site.yml.
type PatchError struct {
	Path string
	Err  error
}

func (e PatchError) Error() string {
	return fmt.Sprintf("updating navigation in %s: %v", e.Path, e.Err)
}

func (e PatchError) Unwrap() error {
	return e.Err
}

// UpsertNav adds entry to the navigation list of the site.yml at path unless
// an item with the same id is already there. The file is patched as text so
// comments and layout survive.
func UpsertNav(path string, entry NavEntry) (PatchResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PatchResult{Path: path}, PatchError{Path: path, Err: err}
	}
	updated, res, err := PatchNav(string(raw), entry)
	res.Path = path
	if err != nil {
		return res, PatchError{Path: path, Err: err}
	}
	if !res.Updated {
		return res, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return res, PatchError{Path: path, Err: err}
	}
	return res, nil
}

var (
	navLine     = regexp.MustCompile(`^navigation\s*:`)
	topLevelKey = regexp.MustCompile(`^[A-Za-z0-9_-]+\s*:`)
	commentLine = regexp.MustCompile(`^\s*#`)
	listItem    = regexp.MustCompile(`^(\s*)-\s`)
	lineBreak   = regexp.MustCompile(`\r?\n`)
)

// PatchNav returns raw with entry inserted into its navigation list.
func PatchNav(raw string, entry NavEntry) (string, PatchResult, error) {
	var loaded any
	if err := yaml.Unmarshal([]byte(raw), &loaded); err != nil {
		return raw, PatchResult{}, fmt.Errorf("parsing site.yml: %w", err)
	}
	doc, ok := loaded.(map[string]any)
	if !ok {
		return raw, PatchResult{Reason: ReasonNotObject}, nil
	}
	if nav, present := doc["navigation"]; present {
		items, ok := nav.([]any)
		if !ok {
			return raw, PatchResult{Reason: ReasonNavigationNotArray}, nil
		}
		for _, item := range items {
			if m, ok := item.(map[string]any); ok && fmt.Sprint(m["id"]) == entry.ID {
				return raw, PatchResult{Reason: ReasonAlreadyPresent}, nil
			}
		}
	}

	lines := lineBreak.Split(strings.TrimRight(raw, "\r\n"), -1)
	nav := -1
	for i, line := range lines {
		if navLine.MatchString(line) {
			nav = i
			break
		}
	}

	if nav == -1 {
		normalized := raw
		if !strings.HasSuffix(normalized, "\n") {
			normalized += "\n"
		}
		spacer := "\n"
		if strings.TrimSpace(normalized) == "" {
			spacer = ""
		}
		out := normalized + spacer + "navigation:\n" + strings.Join(navSnippet(entry, "  "), "\n") + "\n"
		return out, PatchResult{Updated: true, Reason: ReasonAddedBlock}, nil
	}

	insertAt := len(lines)
	indent, indented := "  ", false
	for i := nav + 1; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" || commentLine.MatchString(line) {
			continue
		}
		if topLevelKey.MatchString(line) {
			insertAt = i
			break
		}
		if m := listItem.FindStringSubmatch(line); m != nil && !indented && m[1] != "" {
			indent, indented = m[1], true
		}
	}

	snippet := navSnippet(entry, indent)
	if insertAt > 0 && strings.TrimSpace(lines[insertAt-1]) != "" {
		snippet = append([]string{""}, snippet...)
	}
	out := make([]string, 0, len(lines)+len(snippet))
	out = append(out, lines[:insertAt]...)
	out = append(out, snippet...)
	out = append(out, lines[insertAt:]...)

	return strings.Join(out, "\n") + "\n", PatchResult{Updated: true, Reason: ReasonUpdatedBlock}, nil
}

func navSnippet(entry NavEntry, indent string) []string {
	prop := indent + "  "
	return []string{
		indent + "- name: " + scalar(entry.Name),
		prop + "icon: " + scalar(entry.Icon),
		prop + "id: " + scalar(entry.ID),
	}
}

// scalar renders s as a single-line YAML scalar, quoting it when needed.
func scalar(s string) string {
	out, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%q", s)
	}
	return strings.TrimSuffix(string(out), "\n")
}
