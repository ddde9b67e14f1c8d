// Package cart owns the ordered cart lines and wishlist entries and their
// persistence round-trips. Every mutation completes its persistence write
// before returning; when the write fails the in-memory state is rolled
// back so memory and persisted state never diverge.
package cart

import (
	"context"
	"fmt"
	"sync"

	"shopkart/internal/model"
	"shopkart/internal/storage"

	"github.com/rs/zerolog"
)

// Store holds the current cart and wishlist. A mutex serialises
// mutations: each one fully completes, including its persistence write,
// before the next is accepted.
type Store struct {
	mu       sync.Mutex
	lines    []model.CartLine
	wishlist []model.WishlistEntry
	storage  storage.Store
	logger   zerolog.Logger
}

// NewStore creates a cart store over the given persistence backend. Call
// Load before use to hydrate from the persisted records.
func NewStore(st storage.Store, logger zerolog.Logger) *Store {
	return &Store{
		lines:    []model.CartLine{},
		wishlist: []model.WishlistEntry{},
		storage:  st,
		logger:   logger.With().Str("component", "cart-store").Logger(),
	}
}

// Load hydrates the store from the persisted cart and wishlist records.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.storage.LoadCart(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cart: %w", err)
	}

	wishlist, err := s.storage.LoadWishlist(ctx)
	if err != nil {
		return fmt.Errorf("failed to load wishlist: %w", err)
	}

	s.lines = lines
	s.wishlist = wishlist

	s.logger.Info().
		Int("cart_lines", len(lines)).
		Int("wishlist_entries", len(wishlist)).
		Msg("cart store loaded")

	return nil
}

// AddItem adds the product to the cart. If a line with the same product id
// already exists its quantity is incremented; the cart never holds two
// lines for one product. The unit price is snapshotted from the product at
// add time.
func (s *Store) AddItem(ctx context.Context, product model.Product, qty int) error {
	if qty < 1 {
		return model.ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.lines
	next := copyLines(s.lines)

	if i := findLine(next, product.ID); i >= 0 {
		next[i].Quantity += qty
	} else {
		next = append(next, product.CartLine(qty))
	}

	s.lines = next
	if err := s.storage.SaveCart(ctx, s.lines); err != nil {
		s.lines = prev
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to persist cart")
		return model.PersistenceFailure("cart")
	}

	s.logger.Debug().
		Str("product_id", product.ID).
		Int("qty", qty).
		Msg("item added to cart")

	return nil
}

// RemoveItem removes the line for the product id. Removing an absent
// product is a no-op, not an error.
func (s *Store) RemoveItem(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := findLine(s.lines, productID)
	if i < 0 {
		return nil
	}

	prev := s.lines
	next := copyLines(s.lines)
	next = append(next[:i], next[i+1:]...)

	s.lines = next
	if err := s.storage.SaveCart(ctx, s.lines); err != nil {
		s.lines = prev
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to persist cart")
		return model.PersistenceFailure("cart")
	}

	s.logger.Debug().Str("product_id", productID).Msg("item removed from cart")

	return nil
}

// ChangeQuantity adjusts the line's quantity by delta. A result of zero or
// below removes the line entirely; a quantity below one is never stored.
// Changing an absent product is a no-op.
func (s *Store) ChangeQuantity(ctx context.Context, productID string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := findLine(s.lines, productID)
	if i < 0 {
		return nil
	}

	prev := s.lines
	next := copyLines(s.lines)

	next[i].Quantity += delta
	if next[i].Quantity <= 0 {
		next = append(next[:i], next[i+1:]...)
	}

	s.lines = next
	if err := s.storage.SaveCart(ctx, s.lines); err != nil {
		s.lines = prev
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to persist cart")
		return model.PersistenceFailure("cart")
	}

	s.logger.Debug().
		Str("product_id", productID).
		Int("delta", delta).
		Msg("quantity changed")

	return nil
}

// AddToWishlist saves the product to the wishlist. Entries are unique per
// product id; adding an existing product is a no-op.
func (s *Store) AddToWishlist(ctx context.Context, product model.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if findEntry(s.wishlist, product.ID) >= 0 {
		return nil
	}

	prev := s.wishlist
	next := copyEntries(s.wishlist)
	next = append(next, product.WishlistEntry())

	s.wishlist = next
	if err := s.storage.SaveWishlist(ctx, s.wishlist); err != nil {
		s.wishlist = prev
		s.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to persist wishlist")
		return model.PersistenceFailure("wishlist")
	}

	s.logger.Debug().Str("product_id", product.ID).Msg("item added to wishlist")

	return nil
}

// RemoveFromWishlist removes the entry for the product id. Removing an
// absent product is a no-op.
func (s *Store) RemoveFromWishlist(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := findEntry(s.wishlist, productID)
	if i < 0 {
		return nil
	}

	prev := s.wishlist
	next := copyEntries(s.wishlist)
	next = append(next[:i], next[i+1:]...)

	s.wishlist = next
	if err := s.storage.SaveWishlist(ctx, s.wishlist); err != nil {
		s.wishlist = prev
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to persist wishlist")
		return model.PersistenceFailure("wishlist")
	}

	s.logger.Debug().Str("product_id", productID).Msg("item removed from wishlist")

	return nil
}

// MoveWishlistToCart atomically removes the wishlist entry and adds it to
// the cart with quantity one. When the cart already holds a line for the
// product the move merges into it, preserving line uniqueness. Both
// mutations succeed or neither does.
func (s *Store) MoveWishlistToCart(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	wi := findEntry(s.wishlist, productID)
	if wi < 0 {
		return model.ErrProductNotFound
	}
	entry := s.wishlist[wi]

	prevCart := s.lines
	prevWishlist := s.wishlist

	nextCart := copyLines(s.lines)
	if ci := findLine(nextCart, productID); ci >= 0 {
		nextCart[ci].Quantity++
	} else {
		nextCart = append(nextCart, model.CartLine{
			ProductID: entry.ProductID,
			Title:     entry.Title,
			ImageURL:  entry.ImageURL,
			UnitPrice: entry.UnitPrice,
			Quantity:  1,
		})
	}

	nextWishlist := copyEntries(s.wishlist)
	nextWishlist = append(nextWishlist[:wi], nextWishlist[wi+1:]...)

	s.lines = nextCart
	s.wishlist = nextWishlist

	if err := s.storage.SaveCart(ctx, s.lines); err != nil {
		s.lines = prevCart
		s.wishlist = prevWishlist
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to persist cart during move")
		return model.PersistenceFailure("cart")
	}

	if err := s.storage.SaveWishlist(ctx, s.wishlist); err != nil {
		// Undo the cart write so the persisted records stay consistent.
		s.lines = prevCart
		s.wishlist = prevWishlist
		if undoErr := s.storage.SaveCart(ctx, prevCart); undoErr != nil {
			s.logger.Error().Err(undoErr).Msg("failed to undo cart write after wishlist failure")
		}
		s.logger.Error().Err(err).Str("product_id", productID).Msg("failed to persist wishlist during move")
		return model.PersistenceFailure("wishlist")
	}

	s.logger.Debug().Str("product_id", productID).Msg("wishlist entry moved to cart")

	return nil
}

// Clear empties the cart. Used by the checkout orchestrator after a
// committed invoice.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.lines
	s.lines = []model.CartLine{}

	if err := s.storage.SaveCart(ctx, s.lines); err != nil {
		s.lines = prev
		s.logger.Error().Err(err).Msg("failed to persist cleared cart")
		return model.PersistenceFailure("cart")
	}

	s.logger.Debug().Msg("cart cleared")

	return nil
}

// Snapshot returns a read-only copy of the current cart lines.
func (s *Store) Snapshot() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyLines(s.lines)
}

// Wishlist returns a read-only copy of the current wishlist entries.
func (s *Store) Wishlist() []model.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyEntries(s.wishlist)
}

func findLine(lines []model.CartLine, productID string) int {
	for i, line := range lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func findEntry(entries []model.WishlistEntry, productID string) int {
	for i, entry := range entries {
		if entry.ProductID == productID {
			return i
		}
	}
	return -1
}

func copyLines(lines []model.CartLine) []model.CartLine {
	out := make([]model.CartLine, len(lines))
	copy(out, lines)
	return out
}

func copyEntries(entries []model.WishlistEntry) []model.WishlistEntry {
	out := make([]model.WishlistEntry, len(entries))
	copy(out, entries)
	return out
}
