// Package domain holds DTOs for identify http and service contracts
package domain

import (
	"time"

	"animefinder/internal/core/anime"
	"animefinder/internal/core/scene"
)

// AdditionalInfo carries optional hints the user supplied alongside the description
type AdditionalInfo struct {
	ApproximateYear string `json:"approximateYear,omitempty" validate:"omitempty,max=40" example:"early 2020s"`
	Genre           string `json:"genre,omitempty" validate:"omitempty,max=100" example:"fantasy"`
	Style           string `json:"style,omitempty" validate:"omitempty,max=100" example:"watercolor"`
	Language        string `json:"language,omitempty" validate:"omitempty,oneof=japanese english any" example:"japanese"`
}

// Options tune how many matches come back
// zero values fall back to the service configuration
type Options struct {
	MaxResults    int     `json:"maxResults,omitempty" validate:"omitempty,min=1,max=10" example:"3"`
	MinConfidence float64 `json:"minConfidence,omitempty" validate:"omitempty,min=0,max=1" example:"0.3"`
}

// Request is the identify payload
// description bounds are checked by the service so the messages stay stable
type Request struct {
	Description    string          `json:"description" example:"a tiny prince who cannot hear befriends a shadow"`
	AdditionalInfo *AdditionalInfo `json:"additionalInfo,omitempty"`
	Options        *Options        `json:"options,omitempty"`
}

// Query echoes what was searched
type Query struct {
	ProcessedDescription string         `json:"processedDescription"`
	ExtractedElements    scene.Elements `json:"extractedElements"`
}

// Result is the identification outcome
// Success false carries Error and an empty Matches
type Result struct {
	Success    bool          `json:"success" example:"true"`
	Matches    []anime.Match `json:"matches"`
	Query      Query         `json:"query"`
	SearchTime int64         `json:"searchTime" example:"1840"`
	Error      string        `json:"error,omitempty"`
}

// Entry is one audit record of an identification
type Entry struct {
	ID          string
	Description string
	Success     bool
	Matches     []anime.Match
	SearchMs    int64
	Error       string
	CreatedAt   time.Time
}

// TopTitle returns the best ranked title and confidence, empty when nothing matched
func (e Entry) TopTitle() (string, float64) {
	if len(e.Matches) == 0 {
		return "", 0
	}
	m := e.Matches[0]
	return m.Anime.Title.Display(), m.Confidence
}
