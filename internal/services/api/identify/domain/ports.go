package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Identify(ctx context.Context, in Request) (Result, error)
}

// Recorder persists audit entries
// implementations log their own failures and never block the caller on them
type Recorder interface {
	Record(ctx context.Context, e Entry)
}
