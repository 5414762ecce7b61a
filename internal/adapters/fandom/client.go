// Package fandom finds a representative image and page for an anime title on Fandom wikis
package fandom

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"animefinder/internal/core/normalize"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/logger"
	lumnet "animefinder/internal/platform/net"
	str "animefinder/internal/platform/strings"
)

const (
	defaultUA      = "AnimeFinderBot/1.0"
	defaultTimeout = 8 * time.Second
	genericWiki    = "anime"
	thumbSize      = "400"
	maxBodyBytes   = 1 << 20
)

// Options configures the Client
type Options struct {
	UserAgent string
	Timeout   time.Duration

	// APIURL maps a wiki name to its api.php endpoint; tests point it at httptest
	APIURL func(wiki string) string
}

// Result is what a lookup found
// ImageURL is nil when only a page (or nothing) was found
type Result struct {
	Success   bool    `json:"success"`
	ImageURL  *string `json:"imageUrl"`
	Source    string  `json:"source"`
	Wiki      string  `json:"wiki"`
	PageTitle string  `json:"pageTitle,omitempty"`
	FandomURL string  `json:"fandomUrl,omitempty"`
}

// Client queries MediaWiki endpoints on fandom.com
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
}

// NewClient creates a Client with defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.APIURL == nil {
		o.APIURL = func(wiki string) string { return "https://" + wiki + ".fandom.com/api.php" }
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("fandom"),
	}
}

// Candidates lists the wikis tried for title, most specific first
func Candidates(title string) []string {
	slug := normalize.Slug(title)
	if slug == "" || slug == genericWiki {
		return []string{genericWiki}
	}
	return []string{slug, slug + "wiki", slug + "anime", genericWiki}
}

// PageURL is the public page link for a page on wiki
func PageURL(wiki, page string) string {
	return "https://" + wiki + ".fandom.com/wiki/" + str.URIComponent(strings.Join(strings.Fields(page), "_"))
}

// SearchURL is the fallback search page on the generic anime wiki
func SearchURL(title string) string {
	return "https://" + genericWiki + ".fandom.com/wiki/Special:Search?query=" + str.URIComponent(title)
}

// Lookup walks the candidate wikis and returns the first thumbnail found
// Per-wiki failures are logged and skipped; only context cancellation is returned as an error
func (c *Client) Lookup(ctx context.Context, title string) (Result, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Result{}, perr.WithField(perr.Validationf("Title parameter is required"), "title")
	}

	for _, wiki := range Candidates(title) {
		if err := ctx.Err(); err != nil {
			return Result{}, perr.Wrap(err, perr.ErrorCodeTimeout, "fandom lookup canceled")
		}

		if img, ok := c.thumbnail(ctx, wiki, "Main_Page"); ok {
			return c.found(wiki, "Main_Page", &img), nil
		}

		hits := c.search(ctx, wiki, title, 5)
		if len(hits) == 0 {
			continue
		}
		if img, ok := c.thumbnail(ctx, wiki, hits[0]); ok {
			return c.found(wiki, hits[0], &img), nil
		}
	}

	if err := ctx.Err(); err != nil {
		return Result{}, perr.Wrap(err, perr.ErrorCodeTimeout, "fandom lookup canceled")
	}
	if hits := c.search(ctx, genericWiki, title, 3); len(hits) > 0 {
		return c.found(genericWiki, hits[0], nil), nil
	}

	return Result{
		Success:   true,
		Source:    "fandom",
		Wiki:      genericWiki + ".fandom.com",
		FandomURL: SearchURL(title),
	}, nil
}

func (c *Client) found(wiki, page string, img *string) Result {
	return Result{
		Success:   true,
		ImageURL:  img,
		Source:    "fandom",
		Wiki:      wiki + ".fandom.com",
		PageTitle: page,
		FandomURL: PageURL(wiki, page),
	}
}

type pageImagesResponse struct {
	Query struct {
		Pages map[string]struct {
			Title     string `json:"title"`
			Thumbnail *struct {
				Source string `json:"source"`
			} `json:"thumbnail"`
		} `json:"pages"`
	} `json:"query"`
}

// thumbnail asks pageimages for page and returns the first thumbnail source
func (c *Client) thumbnail(ctx context.Context, wiki, page string) (string, bool) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("format", "json")
	q.Set("titles", page)
	q.Set("prop", "pageimages")
	q.Set("pithumbsize", thumbSize)
	q.Set("origin", "*")

	var resp pageImagesResponse
	if err := c.getJSON(ctx, wiki, q, &resp); err != nil {
		return "", false
	}
	for _, p := range resp.Query.Pages {
		if p.Thumbnail != nil && strings.TrimSpace(p.Thumbnail.Source) != "" {
			return p.Thumbnail.Source, true
		}
	}
	return "", false
}

// search runs opensearch and returns the suggested page titles
// The reply is [query, titles, descriptions, urls]
func (c *Client) search(ctx context.Context, wiki, term string, limit int) []string {
	q := url.Values{}
	q.Set("action", "opensearch")
	q.Set("format", "json")
	q.Set("search", term)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("origin", "*")

	var raw []json.RawMessage
	if err := c.getJSON(ctx, wiki, q, &raw); err != nil || len(raw) < 2 {
		return nil
	}
	var titles []string
	if err := json.Unmarshal(raw[1], &titles); err != nil {
		c.log.Debug().Err(err).Str("wiki", wiki).Msg("fandom opensearch titles not a list")
		return nil
	}
	out := titles[:0]
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (c *Client) getJSON(ctx context.Context, wiki string, q url.Values, v any) error {
	u := c.opts.APIURL(wiki) + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "fandom new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")
	if id := lumnet.RequestID(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("wiki", wiki).Str("action", q.Get("action")).Msg("fandom request failed")
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "fandom %s unreachable", wiki)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		c.log.Debug().Int("status", resp.StatusCode).Str("wiki", wiki).Str("action", q.Get("action")).Msg("fandom non 2xx")
		return perr.Upstreamf("fandom %s status %d", wiki, resp.StatusCode)
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		c.log.Debug().Err(err).Str("wiki", wiki).Msg("fandom decode failed")
		return perr.Wrapf(err, perr.ErrorCodeUpstream, "fandom %s bad json", wiki)
	}
	return nil
}
