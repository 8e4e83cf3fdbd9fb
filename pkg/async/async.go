package async

import (
	"context"
	"fmt"
	"sync"
)

// Future holds the result of a function running on its own goroutine.
type Future[T any] struct {
	result T
	err    error
	done   chan struct{}
}

// Go runs fn on a new goroutine. A context that is already cancelled yields
// its error without calling fn. A panic in fn is returned as ErrPanic.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("%w: %v", ErrPanic, r)
			}
		}()

		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx)
	}()

	return f
}

// Await blocks until the function returns or ctx is done.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done is closed once the function has returned.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the function has returned, without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Join2 waits for both futures and returns both results. The error is the
// first failure in argument order; both futures are always awaited.
func Join2[A, B any](ctx context.Context, fa *Future[A], fb *Future[B]) (A, B, error) {
	a, errA := fa.Await(ctx)
	b, errB := fb.Await(ctx)
	if errA != nil {
		return a, b, errA
	}
	return a, b, errB
}

// Group tracks functions started through it.
// The zero value is ready to use.
type Group struct {
	wg sync.WaitGroup
}

// GoIn runs fn like Go and tracks it in g until it returns.
func GoIn[T any](ctx context.Context, g *Group, fn func(context.Context) (T, error)) *Future[T] {
	g.wg.Add(1)
	f := Go(ctx, fn)
	go func() {
		<-f.done
		g.wg.Done()
	}()
	return f
}

// Wait blocks until every tracked function has returned or ctx is done.
func (g *Group) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
