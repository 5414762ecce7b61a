package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFold_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{name: "identity ascii", in: "hello world", out: "hello world"},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'f', 'o', 'o', 0x80, ' ', 'b', 'a', 'r'}),
			out:  "foo bar",
		},
		{name: "case fold", in: "Shingeki No KYOJIN", out: "shingeki no kyojin"},
		{name: "remove zero-widths", in: "na\u200Bru\u200Dto", out: "naruto"},
		{name: "combining accent", in: "cafe\u0301", out: "cafe"},
		{name: "precomposed accent", in: "Pok\u00e9mon", out: "pokemon"},
		{name: "width fold fullwidth", in: "ＥＶＡ unit", out: "eva unit"},
		{name: "nfkc ligature", in: "oﬃce", out: "office"},
		{name: "collapse whitespace", in: "a\t\tb\nc   d", out: "a b c d"},
		{name: "empty", in: "", out: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Fold(tc.in)
			if got != tc.out {
				t.Fatalf("Fold(%q) = %q, want %q", tc.in, got, tc.out)
			}
			if again := Fold(got); again != got {
				t.Fatalf("Fold not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestClean(t *testing.T) {
	in := "  A girl\u0000 with  Blonde hair\r\n\n  cries\x7f on a rooftop  "
	want := "A girl with Blonde hair\ncries on a rooftop"
	if got := Clean(in); got != want {
		t.Fatalf("Clean(%q) = %q, want %q", in, got, want)
	}

	long := strings.Repeat("é", MaxPromptRunes+50)
	got := Clean(long)
	if n := utf8.RuneCountInString(got); n != MaxPromptRunes {
		t.Fatalf("Clean did not cap runes: got %d", n)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("Clean produced invalid utf8")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Attack on Titan":          "attackontitan",
		"Re:Zero - Starting Life":  "rezerostartinglife",
		"Pokémon":                  "pokemon",
		"  JoJo's Bizarre   Adv  ": "jojosbizarreadv",
		"進撃の巨人":                    "",
		"":                         "",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Fatalf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCollapseSpaces(t *testing.T) {
	in := " \t a \n b   c \r\n "
	if got := collapseSpaces(in, false); got != "a b c" {
		t.Fatalf("collapseSpaces(%q, false) = %q", in, got)
	}
	if got := collapseSpaces(in, true); got != "a\nb c" {
		t.Fatalf("collapseSpaces(%q, true) = %q", in, got)
	}
}
