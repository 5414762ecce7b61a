// Package anime holds the anime record attached to matches and the ranking rule applied to them
package anime

import (
	"strings"

	str "animefinder/internal/platform/strings"

	"github.com/google/uuid"
)

// Status values as reported by AniList
const (
	StatusFinished  = "FINISHED"
	StatusReleasing = "RELEASING"
)

// Format and source defaults for model supplied records
const (
	DefaultFormat      = "TV"
	DefaultSource      = "MANGA"
	DefaultDescription = "No description available"
)

// Title carries the three common title spellings; only Romaji is required
type Title struct {
	Romaji  string `json:"romaji"`
	English string `json:"english,omitempty"`
	Native  string `json:"native,omitempty"`
}

// Display prefers the English title and falls back to romaji
func (t Title) Display() string {
	if s := strings.TrimSpace(t.English); s != "" {
		return s
	}
	return strings.TrimSpace(t.Romaji)
}

// Empty reports whether no spelling is set
func (t Title) Empty() bool {
	return strings.TrimSpace(t.Romaji) == "" && strings.TrimSpace(t.English) == "" && strings.TrimSpace(t.Native) == ""
}

// CoverImage holds two cover sizes
type CoverImage struct {
	Large  string `json:"large"`
	Medium string `json:"medium"`
}

// Studio names a production studio
type Studio struct {
	Name string `json:"name"`
}

// Anime is the record attached to a Match
type Anime struct {
	ID          string     `json:"id"`
	Title       Title      `json:"title"`
	Description string     `json:"description"`
	CoverImage  CoverImage `json:"coverImage"`
	Episodes    *int       `json:"episodes,omitempty"`
	Status      string     `json:"status"`
	SeasonYear  *int       `json:"seasonYear,omitempty"`
	Genres      []string   `json:"genres"`
	Studios     []Studio   `json:"studios"`
	Format      string     `json:"format"`
	Source      string     `json:"source"`
	SiteURL     string     `json:"siteUrl"`
}

// Match is one candidate identification
type Match struct {
	Anime           Anime    `json:"anime"`
	Confidence      float64  `json:"confidence"`
	Reasoning       string   `json:"reasoning"`
	MatchedElements []string `json:"matchedElements"`
	Episode         *int     `json:"episode,omitempty"`
}

// ID returns a stable name-based id for a romaji title
// The same title always yields the same id across processes
func ID(romaji string) string {
	key := strings.ToLower(strings.TrimSpace(romaji))
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("anime:"+key)).String()
}

// CoverFor builds placeholder cover images labelled with title
func CoverFor(title string) CoverImage {
	q := str.URIComponent(title)
	return CoverImage{
		Large:  "https://via.placeholder.com/300x400/4F46E5/FFFFFF?text=" + q,
		Medium: "https://via.placeholder.com/200x300/4F46E5/FFFFFF?text=" + q,
	}
}

// SiteURLFor builds the AniList search link for a romaji title
func SiteURLFor(romaji string) string {
	return "https://anilist.co/search/anime?search=" + str.URIComponent(romaji)
}
