package target

import (
	"context"
	"errors"
	"io"

	"github.com/vango-dev/reconciler/pkg/fiber"
)

// Multi fans every call out to several targets. All targets are called
// even when one fails; the errors are joined.
type Multi []fiber.Target

// Open implements fiber.Target.
func (m Multi) Open(ctx context.Context) error {
	var errs []error
	for _, t := range m {
		errs = append(errs, t.Open(ctx))
	}
	return errors.Join(errs...)
}

// Commit implements fiber.Target.
func (m Multi) Commit(ctx context.Context, c fiber.Commit) error {
	var errs []error
	for _, t := range m {
		errs = append(errs, t.Commit(ctx, c))
	}
	return errors.Join(errs...)
}

// Unmount implements fiber.Unmounter for the targets that support it.
func (m Multi) Unmount(ctx context.Context, id fiber.ID) error {
	var errs []error
	for _, t := range m {
		if u, ok := t.(fiber.Unmounter); ok {
			errs = append(errs, u.Unmount(ctx, id))
		}
	}
	return errors.Join(errs...)
}

// Close closes the targets implementing io.Closer.
func (m Multi) Close() error {
	var errs []error
	for _, t := range m {
		if c, ok := t.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
