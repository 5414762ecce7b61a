// Package normalize cleans free text before it leaves the process
// Fold pipeline order
// 1 Drop invalid UTF-8 and control runes other than \n \r \t
// 2 Unicode NFKD decomposition
// 3 Case folding
// 4 Remove combining and format marks
// 5 Width fold fullwidth to ASCII
// 6 Recompose NFC
// 7 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// MaxPromptRunes bounds text embedded into an LLM prompt
const MaxPromptRunes = 2000

// pool of fresh transformer chains; transform.Chain is not safe for concurrent use
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Mn)),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
			norm.NFC,
		)
	},
}

// Fold returns a case and accent insensitive key for s
// "Ｓｈｉｎｇｅｋｉ  no Kyojin" and "shingeki no kyojin" fold to the same key
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strip(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return collapseSpaces(ns, false)
}

// Clean prepares user text for embedding in a prompt
// Controls are dropped, whitespace runs collapse (newlines kept) and the result is capped at MaxPromptRunes
// Case and accents are preserved
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(strip(s))
	s = collapseSpaces(s, true)
	return truncateRunes(s, MaxPromptRunes)
}

// strip drops invalid UTF-8 plus NUL, DEL and the C0/C1 controls, keeping line breaks and tabs
func strip(s string) string {
	s = strings.ToValidUTF8(s, "")
	if strings.IndexFunc(s, isControl) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if isControl(r) {
			return -1
		}
		return r
	}, s)
}

func isControl(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	return r < 0x20 || (r >= 0x7f && r <= 0x9f)
}

// collapseSpaces converts whitespace runs to a single ASCII space
// With keepNL a run containing a newline collapses to a single newline instead
// Leading and trailing whitespace is trimmed
func collapseSpaces(s string, keepNL bool) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	sawNL := false
	flush := func() {
		if !inWS {
			return
		}
		if sawNL && keepNL {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
		inWS = false
		sawNL = false
	}
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			if r == '\n' || r == '\r' {
				sawNL = true
			}
			continue
		}
		flush()
		b.WriteRune(r)
	}
	flush()
	return strings.Trim(b.String(), " \n\t\r")
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i]
		}
		n++
	}
	return s
}
