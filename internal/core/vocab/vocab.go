// Package vocab loads the scene keyword lists from the embedded vocab.json
// Lists are read-only after Load and safe for concurrent readers
package vocab

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed vocab.json
var embedded []byte

// Category names one keyword list
type Category string

// Categories in the order they appear on the wire
const (
	Characters   Category = "characters"
	Settings     Category = "settings"
	Actions      Category = "actions"
	Emotions     Category = "emotions"
	VisualStyles Category = "visualStyles"
)

// Categories returns every category in canonical order
func Categories() []Category {
	return []Category{Characters, Settings, Actions, Emotions, VisualStyles}
}

type rawList struct {
	Version      int      `json:"version"`
	Characters   []string `json:"characters"`
	Settings     []string `json:"settings"`
	Actions      []string `json:"actions"`
	Emotions     []string `json:"emotions"`
	VisualStyles []string `json:"visualStyles"`
}

// List is a compiled keyword list
type List struct {
	Version int
	terms   map[Category][]string
}

var (
	defaultOnce sync.Once
	defaultList *List
	defaultErr  error
)

// Load parses the embedded vocab.json
func Load() (*List, error) { return Parse(embedded) }

// Default returns the process-wide list, loading it on first use
// The embedded file is validated by tests so a failure here is a build defect
func Default() *List {
	defaultOnce.Do(func() {
		defaultList, defaultErr = Load()
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultList
}

// Parse builds a List from raw JSON
// Every category must be present and non-empty; terms must be lowercase, trimmed and unique per category
func Parse(b []byte) (*List, error) {
	var raw rawList
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("vocab: parse vocab.json: %w", err)
	}
	if raw.Version < 1 {
		return nil, fmt.Errorf("vocab: unsupported version %d", raw.Version)
	}

	l := &List{Version: raw.Version, terms: make(map[Category][]string, 5)}
	for cat, terms := range map[Category][]string{
		Characters:   raw.Characters,
		Settings:     raw.Settings,
		Actions:      raw.Actions,
		Emotions:     raw.Emotions,
		VisualStyles: raw.VisualStyles,
	} {
		if err := checkTerms(cat, terms); err != nil {
			return nil, err
		}
		l.terms[cat] = terms
	}
	return l, nil
}

func checkTerms(cat Category, terms []string) error {
	if len(terms) == 0 {
		return fmt.Errorf("vocab: category %q is empty", cat)
	}
	seen := make(map[string]struct{}, len(terms))
	for i, t := range terms {
		if t == "" || strings.TrimSpace(t) != t {
			return fmt.Errorf("vocab: %s[%d] is blank or padded: %q", cat, i, t)
		}
		if strings.ToLower(t) != t {
			return fmt.Errorf("vocab: %s[%d] is not lowercase: %q", cat, i, t)
		}
		if _, dup := seen[t]; dup {
			return fmt.Errorf("vocab: %s has duplicate term %q", cat, t)
		}
		seen[t] = struct{}{}
	}
	return nil
}

// Terms returns a copy of the ordered terms for cat
// Unknown categories yield nil
func (l *List) Terms(cat Category) []string {
	src := l.terms[cat]
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Each calls fn for every term of cat in list order without copying
func (l *List) Each(cat Category, fn func(term string)) {
	for _, t := range l.terms[cat] {
		fn(t)
	}
}

// Sizes reports the number of terms per category
func (l *List) Sizes() map[Category]int {
	out := make(map[Category]int, len(l.terms))
	for c, ts := range l.terms {
		out[c] = len(ts)
	}
	return out
}
