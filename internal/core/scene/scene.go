// Package scene pulls scene elements out of a free text description by keyword list substring matching
package scene

import (
	"strings"
	"sync"

	"animefinder/internal/core/vocab"
)

// Elements are the keyword terms found in one description
// Each field is in keyword list order and never nil
type Elements struct {
	Characters  []string `json:"characters"`
	Setting     []string `json:"setting"`
	Actions     []string `json:"actions"`
	Emotions    []string `json:"emotions"`
	VisualStyle []string `json:"visualStyle"`
}

// Empty returns Elements with five empty, non-nil sequences
func Empty() Elements {
	return Elements{
		Characters:  []string{},
		Setting:     []string{},
		Actions:     []string{},
		Emotions:    []string{},
		VisualStyle: []string{},
	}
}

// Count is the total number of terms across all categories
func (e Elements) Count() int {
	return len(e.Characters) + len(e.Setting) + len(e.Actions) + len(e.Emotions) + len(e.VisualStyle)
}

// Labels flattens the elements into one ordered slice, category by category
func (e Elements) Labels() []string {
	out := make([]string, 0, e.Count())
	out = append(out, e.Characters...)
	out = append(out, e.Setting...)
	out = append(out, e.Actions...)
	out = append(out, e.Emotions...)
	return append(out, e.VisualStyle...)
}

// Extractor scans descriptions against a keyword list
// The automaton is built once; Extract holds no mutable state and is safe for concurrent use
type Extractor struct {
	terms []term
	ac    *automaton
}

type term struct {
	cat  vocab.Category
	text string
}

// NewExtractor binds an extractor to list; nil uses vocab.Default()
func NewExtractor(list *vocab.List) *Extractor {
	if list == nil {
		list = vocab.Default()
	}
	x := &Extractor{ac: newAutomaton()}
	for _, cat := range vocab.Categories() {
		list.Each(cat, func(t string) {
			x.ac.add(t, len(x.terms))
			x.terms = append(x.terms, term{cat: cat, text: t})
		})
	}
	x.ac.build()
	return x
}

// Extract lowercases description once and emits every term it contains, per category in list order
// No tokenization: "short" and "short hair" both match "short hair"
func (x *Extractor) Extract(description string) Elements {
	out := Empty()
	lc := strings.ToLower(description)
	if lc == "" {
		return out
	}

	hit := make([]bool, len(x.terms))
	x.ac.scan(lc, hit)
	for id, ok := range hit {
		if !ok {
			continue
		}
		t := x.terms[id]
		switch t.cat {
		case vocab.Characters:
			out.Characters = append(out.Characters, t.text)
		case vocab.Settings:
			out.Setting = append(out.Setting, t.text)
		case vocab.Actions:
			out.Actions = append(out.Actions, t.text)
		case vocab.Emotions:
			out.Emotions = append(out.Emotions, t.text)
		case vocab.VisualStyles:
			out.VisualStyle = append(out.VisualStyle, t.text)
		}
	}
	return out
}

var (
	defaultOnce sync.Once
	defaultX    *Extractor
)

// Extract runs the default extractor over description
func Extract(description string) Elements {
	defaultOnce.Do(func() { defaultX = NewExtractor(nil) })
	return defaultX.Extract(description)
}
