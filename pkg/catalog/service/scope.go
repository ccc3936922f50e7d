package service

import (
	"context"
	"fmt"

	"agromonitor/pkg/catalog/repository"
)

type firmKey struct{}

// WithFirm marks ctx as acting for one firm. Services then treat entities of
// any other firm as missing.
func WithFirm(ctx context.Context, firmID uint) context.Context {
	return context.WithValue(ctx, firmKey{}, firmID)
}

// FirmFrom returns the firm ctx acts for. Background work (poller, CLI) has none.
func FirmFrom(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(firmKey{}).(uint)
	return id, ok
}

// InScope reports whether an entity owned by firmID is visible to ctx.
func InScope(ctx context.Context, firmID uint) bool {
	caller, ok := FirmFrom(ctx)
	return !ok || caller == firmID
}

// CheckScope returns repository.ErrNotFound for an entity outside ctx's firm.
func CheckScope(ctx context.Context, firmID uint, kind string, id uint) error {
	if InScope(ctx, firmID) {
		return nil
	}
	return fmt.Errorf("%w: %s %d", repository.ErrNotFound, kind, id)
}
