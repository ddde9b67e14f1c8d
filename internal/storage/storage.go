package storage

import (
	"context"

	"shopkart/internal/model"
)

// Store is the persistence boundary for the three session-wide slots: the
// current cart, the wishlist, and the latest invoice. Implementations must
// complete each write before returning; callers rely on that to keep
// in-memory and persisted state in lockstep.
type Store interface {
	// LoadCart reads the persisted cart record. A missing record yields an
	// empty cart, not an error.
	LoadCart(ctx context.Context) ([]model.CartLine, error)

	// SaveCart overwrites the persisted cart record.
	SaveCart(ctx context.Context, lines []model.CartLine) error

	// LoadWishlist reads the persisted wishlist record.
	LoadWishlist(ctx context.Context) ([]model.WishlistEntry, error)

	// SaveWishlist overwrites the persisted wishlist record.
	SaveWishlist(ctx context.Context, entries []model.WishlistEntry) error

	// LoadInvoice reads the latest invoice, or nil when none exists.
	LoadInvoice(ctx context.Context) (*model.Invoice, error)

	// SaveInvoice overwrites the latest-invoice slot.
	SaveInvoice(ctx context.Context, inv *model.Invoice) error
}
