// Package domain holds DTOs for identification history
package domain

import "time"

// Defaults and bounds for history queries
const (
	DefaultRecentLimit = 20
	DefaultTitlesLimit = 10
	DefaultTitlesDays  = 30
)

// RecentInput pages the latest identifications
type RecentInput struct {
	Limit int `json:"limit" validate:"min=1,max=100" example:"20"`
}

// RecentEntry is one stored identification request
type RecentEntry struct {
	ID            string    `json:"id" example:"7d3a6f1c-2a54-4a55-9a0f-3c1d3f0b1e11"`
	Description   string    `json:"description"`
	Success       bool      `json:"success"`
	MatchCount    int       `json:"matchCount" example:"3"`
	TopTitle      *string   `json:"topTitle" example:"Ranking of Kings"`
	TopConfidence *float64  `json:"topConfidence" example:"0.95"`
	SearchMs      int64     `json:"searchMs" example:"1840"`
	Error         string    `json:"error,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TitlesInput asks for the most matched titles over the last Days days
type TitlesInput struct {
	Days  int `json:"days" validate:"min=1,max=365" example:"30"`
	Limit int `json:"limit" validate:"min=1,max=100" example:"10"`
}

// TitleCount aggregates matches of one title
type TitleCount struct {
	Title         string  `json:"title" example:"Ranking of Kings"`
	Matches       uint64  `json:"matches" example:"12"`
	AvgConfidence float64 `json:"avgConfidence" example:"0.81"`
}
