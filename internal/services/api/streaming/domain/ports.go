package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Links(ctx context.Context, in LinksInput) (LinksResult, error)
}
