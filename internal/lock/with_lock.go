package lock

import (
	"context"
)

// WithLock runs op while holding the guard's lock. The lock is released on
// every exit path: normal return, error, panic and cancellation.
func WithLock[T any](ctx context.Context, g *Guard, op func(context.Context) (T, error)) (result T, err error) {
	if _, err = g.Acquire(ctx); err != nil {
		return result, err
	}
	defer func() {
		if releaseErr := g.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()
	return op(ctx)
}
