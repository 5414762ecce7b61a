// Package service builds streaming search links
package service

import (
	"context"
	"strings"

	"animefinder/internal/core/streaming"
	perr "animefinder/internal/platform/errors"
	"animefinder/internal/services/api/streaming/domain"
)

// Service defines the streaming service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the streaming service over a provider catalog
type Svc struct {
	cat *streaming.Catalog
}

// New constructs a streaming service; a nil catalog uses the embedded one
func New(cat *streaming.Catalog) *Svc {
	if cat == nil {
		cat = streaming.Default()
	}
	return &Svc{cat: cat}
}

// Links returns the provider links for in.Title
func (s *Svc) Links(_ context.Context, in domain.LinksInput) (domain.LinksResult, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return domain.LinksResult{}, perr.WithField(perr.Validationf("Title parameter is required"), "title")
	}
	return domain.LinksResult{
		Success:        true,
		Links:          s.cat.Links(title, streaming.Options{Region: in.Region, All: in.All}),
		TotalProviders: s.cat.Len(),
		Note:           s.cat.Note,
	}, nil
}
