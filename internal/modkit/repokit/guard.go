package repokit

import (
	"context"
	"fmt"
	"time"
)

// guardTimeout applies when the caller's context has no deadline
const guardTimeout = 5 * time.Second

type guarder interface {
	Guard(context.Context) error
}

// MustGuard pings every configured backend once and panics if any fails to answer
func MustGuard(ctx context.Context, st guarder) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, guardTimeout)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("backend guard failed: %w", err))
	}
}
