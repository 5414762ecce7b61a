package fandom

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	perr "animefinder/internal/platform/errors"
)

// fakeWikis serves /<wiki>/api.php; pages maps wiki -> page title -> thumbnail
type fakeWikis struct {
	mu     sync.Mutex
	pages  map[string]map[string]string
	search map[string][]string
	broken map[string]bool
	hits   []string
	lastUA string
	limits []string
}

func (f *fakeWikis) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wiki := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/"), "/api.php")
	q := r.URL.Query()

	f.mu.Lock()
	f.hits = append(f.hits, wiki+":"+q.Get("action"))
	f.lastUA = r.Header.Get("User-Agent")
	if q.Get("action") == "opensearch" {
		f.limits = append(f.limits, q.Get("limit"))
	}
	f.mu.Unlock()

	if f.broken[wiki] {
		w.WriteHeader(http.StatusBadGateway)
		return
	}
	switch q.Get("action") {
	case "query":
		pages := map[string]any{}
		if src, ok := f.pages[wiki][q.Get("titles")]; ok {
			pages["1"] = map[string]any{"title": q.Get("titles"), "thumbnail": map[string]any{"source": src}}
		} else {
			pages["-1"] = map[string]any{"title": q.Get("titles"), "missing": ""}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"query": map[string]any{"pages": pages}})
	case "opensearch":
		titles := f.search[wiki]
		if titles == nil {
			titles = []string{}
		}
		_ = json.NewEncoder(w).Encode([]any{q.Get("search"), titles, []string{}, []string{}})
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func newTestClient(t *testing.T, f *fakeWikis) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return NewClient(Options{APIURL: func(wiki string) string { return srv.URL + "/" + wiki + "/api.php" }})
}

func TestCandidates(t *testing.T) {
	got := Candidates("Attack on Titan!")
	want := []string{"attackontitan", "attackontitanwiki", "attackontitananime", "anime"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
	if got := Candidates("進撃の巨人"); !reflect.DeepEqual(got, []string{"anime"}) {
		t.Fatalf("non ascii title should only try anime wiki, got %v", got)
	}
}

func TestLookup_MainPageThumbnail(t *testing.T) {
	f := &fakeWikis{pages: map[string]map[string]string{
		"narutowiki": {"Main_Page": "https://img/naruto.png"},
	}}
	c := newTestClient(t, f)

	got, err := c.Lookup(context.Background(), "Naruto")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.ImageURL == nil || *got.ImageURL != "https://img/naruto.png" {
		t.Fatalf("image = %v", got.ImageURL)
	}
	if got.Wiki != "narutowiki.fandom.com" || !got.Success || got.Source != "fandom" {
		t.Fatalf("result = %+v", got)
	}
	if f.lastUA != "AnimeFinderBot/1.0" {
		t.Fatalf("user agent = %q", f.lastUA)
	}
}

func TestLookup_SearchThenPageImage(t *testing.T) {
	f := &fakeWikis{
		pages:  map[string]map[string]string{"ousamaranking": {"Bojji": "https://img/bojji.png"}},
		search: map[string][]string{"ousamaranking": {"Bojji", "Kage"}},
	}
	c := newTestClient(t, f)

	got, err := c.Lookup(context.Background(), "Ousama Ranking")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.PageTitle != "Bojji" || got.FandomURL != "https://ousamaranking.fandom.com/wiki/Bojji" {
		t.Fatalf("result = %+v", got)
	}
	if got.ImageURL == nil || *got.ImageURL != "https://img/bojji.png" {
		t.Fatalf("image = %v", got.ImageURL)
	}
	if f.limits[0] != "5" {
		t.Fatalf("wiki opensearch limit = %s, want 5", f.limits[0])
	}
}

func TestLookup_GenericSearchWithoutImage(t *testing.T) {
	f := &fakeWikis{
		broken: map[string]bool{"oddtaxi": true, "oddtaxiwiki": true},
		search: map[string][]string{"anime": {"Odd Taxi (anime)"}},
	}
	c := newTestClient(t, f)

	got, err := c.Lookup(context.Background(), "Odd Taxi")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.ImageURL != nil {
		t.Fatalf("expected nil image, got %q", *got.ImageURL)
	}
	if got.Wiki != "anime.fandom.com" || got.PageTitle != "Odd Taxi (anime)" {
		t.Fatalf("result = %+v", got)
	}
	if got.FandomURL != "https://anime.fandom.com/wiki/Odd_Taxi_%28anime%29" {
		t.Fatalf("fandomUrl = %q", got.FandomURL)
	}
	if last := f.limits[len(f.limits)-1]; last != "3" {
		t.Fatalf("generic opensearch limit = %s, want 3", last)
	}
}

func TestLookup_FallbackSearchURL(t *testing.T) {
	c := newTestClient(t, &fakeWikis{})

	got, err := c.Lookup(context.Background(), "Nothing Here")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.ImageURL != nil || got.FandomURL != "https://anime.fandom.com/wiki/Special:Search?query=Nothing%20Here" {
		t.Fatalf("result = %+v", got)
	}
	if !got.Success {
		t.Fatalf("fallback should still succeed")
	}
}

func TestLookup_EmptyTitle(t *testing.T) {
	_, err := NewClient(Options{}).Lookup(context.Background(), "  ")
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("err = %v", err)
	}
}

func TestLookup_CanceledContext(t *testing.T) {
	c := newTestClient(t, &fakeWikis{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Lookup(ctx, "Naruto"); err == nil {
		t.Fatalf("expected error on canceled context")
	}
}
