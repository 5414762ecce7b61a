package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Recommend(ctx context.Context, in Request) (Result, error)
}
