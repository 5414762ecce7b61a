package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"animefinder/internal/adapters/llm"
	"animefinder/internal/core/anime"
	"animefinder/internal/core/validate"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/platform/testkit"
	"animefinder/internal/services/api/identify/domain"
)

type fakeLLM struct {
	configured bool
	reply      string
	err        error

	calls  int
	system string
	user   string
}

func (f *fakeLLM) Complete(_ context.Context, system, user string, _ ...llm.CallOption) (string, error) {
	f.calls++
	f.system, f.user = system, user
	return f.reply, f.err
}

func (f *fakeLLM) Configured() bool { return f.configured }

type captureRecorder struct{ entries []domain.Entry }

func (c *captureRecorder) Record(_ context.Context, e domain.Entry) { c.entries = append(c.entries, e) }

const threeMatches = `{"matches":[
 {"title":{"romaji":"Naruto"},"confidence":0.5,"reasoning":"ninjas"},
 {"title":{"romaji":"Ousama Ranking","english":"Ranking of Kings"},"confidence":0.99,"reasoning":"deaf prince","matchedElements":["prince"],"studio":"Wit Studio","year":2021,"episodes":23},
 {"title":{"romaji":"Bleach"},"confidence":0.9,"reasoning":"swords","format":"tv"}
]}`

func TestIdentify_RanksAndCaps(t *testing.T) {
	t.Parallel()

	f := &fakeLLM{configured: true, reply: threeMatches}
	rec := &captureRecorder{}
	s := New(f, rec, Config{MaxResults: 2, ConfidenceCap: 0.95})

	res, err := s.Identify(context.Background(), domain.Request{Description: "  a small prince who cannot hear on a rooftop  "})
	if err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if !res.Success || res.Error != "" {
		t.Fatalf("want success, got %+v", res)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("matches = %d", len(res.Matches))
	}
	if res.Matches[0].Confidence != 0.95 || res.Matches[1].Confidence != 0.9 {
		t.Fatalf("confidences = %v, %v", res.Matches[0].Confidence, res.Matches[1].Confidence)
	}
	top := res.Matches[0].Anime
	if top.Title.Romaji != "Ousama Ranking" || top.ID != anime.ID("Ousama Ranking") {
		t.Fatalf("top = %+v", top)
	}
	if len(top.Studios) != 1 || top.Studios[0].Name != "Wit Studio" || *top.SeasonYear != 2021 {
		t.Fatalf("studio/year not mapped: %+v", top)
	}
	if res.Matches[1].Anime.Format != "TV" {
		t.Fatalf("format = %q", res.Matches[1].Anime.Format)
	}
	if res.Query.ProcessedDescription != "a small prince who cannot hear on a rooftop" {
		t.Fatalf("processed = %q", res.Query.ProcessedDescription)
	}
	if got := res.Query.ExtractedElements.Setting; len(got) != 1 || got[0] != "rooftop" {
		t.Fatalf("setting = %v", got)
	}
	if f.calls != 1 {
		t.Fatalf("llm calls = %d", f.calls)
	}
	testkit.MustContain(t, f.user, "Provide up to 2 matches")

	if len(rec.entries) != 1 {
		t.Fatalf("recorded %d entries", len(rec.entries))
	}
	e := rec.entries[0]
	if !e.Success || len(e.Matches) != 2 || e.ID == "" {
		t.Fatalf("entry = %+v", e)
	}
	if title, conf := e.TopTitle(); title != "Ranking of Kings" || conf != 0.95 {
		t.Fatalf("top title = %q %v", title, conf)
	}
}

func TestIdentify_ValidationNeverCallsModel(t *testing.T) {
	t.Parallel()

	f := &fakeLLM{configured: true, reply: threeMatches}
	rec := &captureRecorder{}
	s := New(f, rec, Config{})

	for _, d := range []string{"", "   ", "hi", strings.Repeat("x", 1001)} {
		_, err := s.Identify(context.Background(), domain.Request{Description: d})
		if !perr.IsCode(err, perr.ErrorCodeValidation) {
			t.Fatalf("%q: want validation error, got %v", d, err)
		}
	}
	_, err := s.Identify(context.Background(), domain.Request{Description: "hi"})
	if perr.MessageOf(err) != validate.MsgTooShort {
		t.Fatalf("message = %q", perr.MessageOf(err))
	}
	if f.calls != 0 || len(rec.entries) != 0 {
		t.Fatalf("invalid input reached the model or recorder")
	}
}

func TestIdentify_FailuresBecomeResults(t *testing.T) {
	t.Parallel()

	timeout := perr.Wrap(llm.ErrTimeout, perr.ErrorCodeTimeout, llm.MsgTimeout)
	cases := []struct {
		name string
		f    *fakeLLM
		msg  string
	}{
		{"not configured", &fakeLLM{}, llm.MsgNotConfigured},
		{"timeout", &fakeLLM{configured: true, err: timeout}, llm.MsgTimeout},
		{"garbage", &fakeLLM{configured: true, reply: "sorry, I cannot help"}, llm.MsgInvalidResponse},
		{"no matches key", &fakeLLM{configured: true, reply: `{"results":[]}`}, llm.MsgInvalidResponse},
	}
	for _, c := range cases {
		rec := &captureRecorder{}
		res, err := New(c.f, rec, Config{}).Identify(context.Background(), domain.Request{Description: "a blonde hero cries at sunset"})
		if err != nil {
			t.Fatalf("%s: error should be folded into the result: %v", c.name, err)
		}
		if res.Success || res.Error != c.msg {
			t.Fatalf("%s: got success=%v error=%q", c.name, res.Success, res.Error)
		}
		if res.Matches == nil || len(res.Matches) != 0 {
			t.Fatalf("%s: matches should be empty and non nil", c.name)
		}
		if len(rec.entries) != 1 || rec.entries[0].Success {
			t.Fatalf("%s: failure not recorded", c.name)
		}
	}
}

func TestIdentify_Options(t *testing.T) {
	t.Parallel()

	f := &fakeLLM{configured: true, reply: threeMatches}
	s := New(f, nil, Config{MaxResults: 3, ConfidenceCap: 0.95})

	res, err := s.Identify(context.Background(), domain.Request{
		Description: "a prince and some ninjas",
		Options:     &domain.Options{MaxResults: 1, MinConfidence: 0.6},
	})
	if err != nil || !res.Success {
		t.Fatalf("Identify: %v %+v", err, res)
	}
	if len(res.Matches) != 1 || res.Matches[0].Anime.Title.Romaji != "Ousama Ranking" {
		t.Fatalf("matches = %+v", res.Matches)
	}

	res, _ = s.Identify(context.Background(), domain.Request{
		Description: "a prince and some ninjas",
		Options:     &domain.Options{MinConfidence: 0.95},
	})
	if len(res.Matches) != 1 {
		t.Fatalf("min confidence filter: %d matches", len(res.Matches))
	}
}

func TestNew_PanicsOnNilCompleter(t *testing.T) {
	t.Parallel()

	testkit.MustPanic(t, func() { New(nil, nil, Config{}) })
}

func TestBuildPrompts_Hints(t *testing.T) {
	t.Parallel()

	_, user := buildPrompts("a girl\x00 with a  sword", &domain.AdditionalInfo{
		ApproximateYear: "2010s",
		Genre:           "action",
		Language:        "japanese",
	}, 3)
	testkit.MustContain(t, user, `"a girl with a sword"`)
	testkit.MustContain(t, user, "Time period hint: 2010s")
	testkit.MustContain(t, user, "Genre hint: action")
	testkit.MustContain(t, user, "original Japanese audio")
	testkit.MustContain(t, user, "Provide up to 3 matches")
	if strings.Contains(user, "Animation style") {
		t.Fatalf("empty hint should be omitted")
	}

	system, user := buildPrompts("plain", nil, 5)
	if system == "" || strings.Contains(user, "hint") {
		t.Fatalf("no hints expected without additional info")
	}
}

func TestParseMatches(t *testing.T) {
	t.Parallel()

	reply := "```json\n" + `{"matches":[{"title":{}},{"title":{"english":"Dr. Stone"},"confidence":0.7,"episode":0}]}` + "\n```"
	got, err := parseMatches(reply)
	if err != nil {
		t.Fatalf("parseMatches: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("untitled entry not dropped: %d", len(got))
	}
	m := got[0]
	if m.Anime.Title.Romaji != "Dr. Stone" {
		t.Fatalf("romaji fallback = %q", m.Anime.Title.Romaji)
	}
	if m.Anime.Description != anime.DefaultDescription || m.Anime.Source != anime.DefaultSource || m.Anime.Status != anime.StatusFinished {
		t.Fatalf("defaults not applied: %+v", m.Anime)
	}
	if m.Episode != nil {
		t.Fatalf("zero episode should be nil")
	}
	if m.MatchedElements == nil || m.Anime.Genres == nil || m.Anime.Studios == nil {
		t.Fatalf("slices must be non nil")
	}
	testkit.MustContain(t, m.Anime.SiteURL, "search=Dr.%20Stone")

	_, err = parseMatches("")
	if !errors.Is(err, llm.ErrInvalidResponse) {
		t.Fatalf("empty reply: %v", err)
	}
}

func TestNew_ConfigBounds(t *testing.T) {
	t.Parallel()

	f := &fakeLLM{}
	cases := []struct {
		in       Config
		cap, tmp float64
	}{
		{Config{ConfidenceCap: 1.5, Temperature: 0}, 1, 0},
		{Config{ConfidenceCap: 0, Temperature: -1}, 0.95, 0.2},
		{Config{ConfidenceCap: 0.8, Temperature: 0.7}, 0.8, 0.7},
	}
	for _, c := range cases {
		s := New(f, nil, c.in)
		if s.cfg.ConfidenceCap != c.cap || s.cfg.Temperature != c.tmp {
			t.Fatalf("New(%+v) cfg = %+v", c.in, s.cfg)
		}
	}
}
