// Package streaming builds provider search links for a title from the embedded providers.json catalog
package streaming

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"

	str "animefinder/internal/platform/strings"
)

//go:embed providers.json
var embedded []byte

const titlePlaceholder = "{title}"

// Provider types
const (
	TypeSubscription = "subscription"
	TypeRent         = "rent"
	TypeBuy          = "buy"
	TypeFree         = "free"
)

// Price is a display price, kept as provider formatted text
type Price struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// Provider is a streaming service as shown to clients
type Provider struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Logo  string `json:"logo"`
	Type  string `json:"type"`
	Price *Price `json:"price,omitempty"`
}

// Link is one search link for a title on a provider
type Link struct {
	Provider Provider `json:"provider"`
	URL      string   `json:"url"`
	Region   []string `json:"region"`
	Quality  []string `json:"quality"`
}

type entry struct {
	Provider
	Featured bool     `json:"featured"`
	URL      string   `json:"url"`
	Regions  []string `json:"regions"`
	Quality  []string `json:"quality"`
}

type rawCatalog struct {
	Version   int     `json:"version"`
	Note      string  `json:"note"`
	Providers []entry `json:"providers"`
}

// Catalog is the compiled provider list; read-only after Load
type Catalog struct {
	Version int
	Note    string
	entries []entry
}

// Options narrows Links
// Region is an ISO 3166 alpha-2 code; empty means any region
// All returns every provider instead of the featured selection
type Options struct {
	Region string
	All    bool
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Load parses the embedded catalog
func Load() (*Catalog, error) { return Parse(embedded) }

// Default returns the process-wide catalog
func Default() *Catalog {
	defaultOnce.Do(func() { defaultCat, defaultErr = Load() })
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultCat
}

// Parse builds a Catalog from raw JSON
func Parse(b []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("streaming: parse providers.json: %w", err)
	}
	if len(raw.Providers) == 0 {
		return nil, fmt.Errorf("streaming: no providers")
	}
	seen := make(map[string]struct{}, len(raw.Providers))
	for i, e := range raw.Providers {
		if e.ID == "" || e.Name == "" {
			return nil, fmt.Errorf("streaming: provider %d missing id or name", i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("streaming: duplicate provider %q", e.ID)
		}
		seen[e.ID] = struct{}{}
		if !strings.Contains(e.URL, titlePlaceholder) {
			return nil, fmt.Errorf("streaming: provider %q url has no %s", e.ID, titlePlaceholder)
		}
		switch e.Type {
		case TypeSubscription, TypeRent, TypeBuy, TypeFree:
		default:
			return nil, fmt.Errorf("streaming: provider %q has unknown type %q", e.ID, e.Type)
		}
		for j, r := range e.Regions {
			raw.Providers[i].Regions[j] = strings.ToUpper(r)
		}
	}
	return &Catalog{Version: raw.Version, Note: raw.Note, entries: raw.Providers}, nil
}

// Len is the number of providers in the catalog
func (c *Catalog) Len() int { return len(c.entries) }

// IDs lists provider ids in catalog order
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.ID
	}
	return out
}

// Links returns search links for title
// The featured selection lists subscription providers first, then the rest, each in catalog order
func (c *Catalog) Links(title string, opts Options) []Link {
	region := strings.ToUpper(strings.TrimSpace(opts.Region))
	enc := str.URIComponent(strings.TrimSpace(title))

	pick := func(e entry) bool {
		if !opts.All && !e.Featured {
			return false
		}
		return region == "" || slices.Contains(e.Regions, region)
	}

	out := make([]Link, 0, len(c.entries))
	add := func(sub bool) {
		for _, e := range c.entries {
			if (e.Type == TypeSubscription) != sub || !pick(e) {
				continue
			}
			out = append(out, e.link(enc))
		}
	}
	if opts.All {
		for _, e := range c.entries {
			if pick(e) {
				out = append(out, e.link(enc))
			}
		}
		return out
	}
	add(true)
	add(false)
	return out
}

func (e entry) link(encTitle string) Link {
	p := e.Provider
	if e.Price != nil {
		cp := *e.Price
		p.Price = &cp
	}
	return Link{
		Provider: p,
		URL:      strings.ReplaceAll(e.URL, titlePlaceholder, encTitle),
		Region:   slices.Clone(e.Regions),
		Quality:  slices.Clone(e.Quality),
	}
}
