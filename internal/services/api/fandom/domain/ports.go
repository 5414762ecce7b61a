package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Lookup(ctx context.Context, in LookupInput) (LookupResult, error)
}

// Looker walks the wikis for one title
type Looker interface {
	Lookup(ctx context.Context, title string) (LookupResult, error)
}
