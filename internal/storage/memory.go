package storage

import (
	"context"
	"sync"

	"shopkart/internal/model"
)

// MemoryStore is an in-memory Store used in tests and anywhere a real
// storage backend is not wanted. Per-slot failure hooks let tests exercise
// rollback paths deterministically.
type MemoryStore struct {
	mu       sync.Mutex
	cart     []model.CartLine
	wishlist []model.WishlistEntry
	invoice  *model.Invoice

	// Failure hooks. When non-nil, the corresponding Save returns the
	// error instead of writing.
	FailSaveCart     error
	FailSaveWishlist error
	FailSaveInvoice  error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadCart returns a copy of the stored cart.
func (s *MemoryStore) LoadCart(ctx context.Context) ([]model.CartLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.CartLine, len(s.cart))
	copy(out, s.cart)
	return out, nil
}

// SaveCart stores a copy of the given lines.
func (s *MemoryStore) SaveCart(ctx context.Context, lines []model.CartLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaveCart != nil {
		return s.FailSaveCart
	}
	s.cart = make([]model.CartLine, len(lines))
	copy(s.cart, lines)
	return nil
}

// LoadWishlist returns a copy of the stored wishlist.
func (s *MemoryStore) LoadWishlist(ctx context.Context) ([]model.WishlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.WishlistEntry, len(s.wishlist))
	copy(out, s.wishlist)
	return out, nil
}

// SaveWishlist stores a copy of the given entries.
func (s *MemoryStore) SaveWishlist(ctx context.Context, entries []model.WishlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaveWishlist != nil {
		return s.FailSaveWishlist
	}
	s.wishlist = make([]model.WishlistEntry, len(entries))
	copy(s.wishlist, entries)
	return nil
}

// LoadInvoice returns the stored invoice, or nil.
func (s *MemoryStore) LoadInvoice(ctx context.Context) (*model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invoice == nil {
		return nil, nil
	}
	inv := *s.invoice
	return &inv, nil
}

// SaveInvoice stores the invoice, overwriting the previous one.
func (s *MemoryStore) SaveInvoice(ctx context.Context, inv *model.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaveInvoice != nil {
		return s.FailSaveInvoice
	}
	if inv == nil {
		s.invoice = nil
		return nil
	}
	cp := *inv
	s.invoice = &cp
	return nil
}
