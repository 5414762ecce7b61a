package service

import (
	"fmt"
	"strings"

	"animefinder/internal/adapters/llm"
	"animefinder/internal/core/anime"
	perr "animefinder/internal/platform/errors"
	str "animefinder/internal/platform/strings"
)

// modelMatch is one entry of the model reply
type modelMatch struct {
	Title           anime.Title `json:"title"`
	Confidence      float64     `json:"confidence"`
	Reasoning       string      `json:"reasoning"`
	MatchedElements []string    `json:"matchedElements"`
	Episode         *int        `json:"episode"`
	Description     string      `json:"description"`
	Year            *int        `json:"year"`
	Genres          []string    `json:"genres"`
	Studio          string      `json:"studio"`
	Episodes        *int        `json:"episodes"`
	Format          string      `json:"format"`
}

type modelReply struct {
	Matches *[]modelMatch `json:"matches"`
}

// parseMatches decodes a completion into matches in reply order
// entries with no title at all are dropped
func parseMatches(content string) ([]anime.Match, error) {
	var reply modelReply
	if err := llm.DecodeJSON(content, &reply); err != nil {
		return nil, err
	}
	if reply.Matches == nil {
		return nil, perr.Wrap(fmt.Errorf("%w: reply has no matches array", llm.ErrInvalidResponse), perr.ErrorCodeUpstream, llm.MsgInvalidResponse)
	}

	out := make([]anime.Match, 0, len(*reply.Matches))
	for _, m := range *reply.Matches {
		if m.Title.Empty() {
			continue
		}
		out = append(out, m.toMatch())
	}
	return out, nil
}

func (m modelMatch) toMatch() anime.Match {
	title := anime.Title{
		Romaji:  strings.TrimSpace(m.Title.Romaji),
		English: strings.TrimSpace(m.Title.English),
		Native:  strings.TrimSpace(m.Title.Native),
	}
	if title.Romaji == "" {
		title.Romaji = str.FirstNonEmpty(title.English, title.Native)
	}

	desc := strings.TrimSpace(m.Description)
	if desc == "" {
		desc = anime.DefaultDescription
	}
	format := strings.ToUpper(strings.TrimSpace(m.Format))
	if format == "" {
		format = anime.DefaultFormat
	}
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	studios := []anime.Studio{}
	if s := strings.TrimSpace(m.Studio); s != "" {
		studios = append(studios, anime.Studio{Name: s})
	}
	elements := m.MatchedElements
	if elements == nil {
		elements = []string{}
	}

	return anime.Match{
		Anime: anime.Anime{
			ID:          anime.ID(title.Romaji),
			Title:       title,
			Description: desc,
			CoverImage:  anime.CoverFor(title.Display()),
			Episodes:    positive(m.Episodes),
			Status:      anime.StatusFinished,
			SeasonYear:  positive(m.Year),
			Genres:      genres,
			Studios:     studios,
			Format:      format,
			Source:      anime.DefaultSource,
			SiteURL:     anime.SiteURLFor(title.Romaji),
		},
		Confidence:      m.Confidence,
		Reasoning:       strings.TrimSpace(m.Reasoning),
		MatchedElements: elements,
		Episode:         positive(m.Episode),
	}
}

// positive drops zero and negative counts the model sometimes sends instead of null
func positive(p *int) *int {
	if p == nil || *p <= 0 {
		return nil
	}
	return p
}
