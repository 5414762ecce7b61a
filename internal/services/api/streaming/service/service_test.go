package service

import (
	"context"
	"strings"
	"testing"

	perr "animefinder/internal/platform/errors"
	"animefinder/internal/services/api/streaming/domain"
)

func TestLinks_TrimsTitle(t *testing.T) {
	t.Parallel()

	res, err := New(nil).Links(context.Background(), domain.LinksInput{Title: "  Ousama Ranking "})
	if err != nil {
		t.Fatalf("links: %v", err)
	}
	if !res.Success || res.TotalProviders != 10 || len(res.Links) == 0 {
		t.Fatalf("result = %+v", res)
	}
	for _, l := range res.Links {
		if strings.Contains(l.URL, "%20%20") || strings.HasSuffix(l.URL, "%20") {
			t.Fatalf("%s: untrimmed title in %q", l.Provider.ID, l.URL)
		}
	}
}

func TestLinks_BlankTitle(t *testing.T) {
	t.Parallel()

	_, err := New(nil).Links(context.Background(), domain.LinksInput{Title: " \t"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "title" {
		t.Fatalf("field = %v", err)
	}
}
