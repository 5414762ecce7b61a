// Package domain holds DTOs for fandom lookups
package domain

import "animefinder/internal/adapters/fandom"

// LookupInput names the title to look up
type LookupInput struct {
	Title string `json:"title" validate:"max=200" example:"Ousama Ranking"`
}

// LookupResult is what the wiki walk found
// ImageURL is null when only a page or the search fallback was found
type LookupResult = fandom.Result
