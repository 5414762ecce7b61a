package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Recent(ctx context.Context, in RecentInput) ([]RecentEntry, error)
	Titles(ctx context.Context, in TitlesInput) ([]TitleCount, error)
}
