package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"shopkart/internal/model"

	"github.com/rs/zerolog"
)

// Record file names inside the data directory. They mirror the records of
// the original single-device store.
const (
	cartFile     = "shopcartdata.json"
	wishlistFile = "shopwishlist.json"
	invoiceFile  = "latest_invoice.json"
)

// fileStore implements Store on top of JSON files in a single directory.
// Writes go through a temp file followed by a rename so a record is never
// observable half-written.
type fileStore struct {
	dir    string
	logger zerolog.Logger
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string, logger zerolog.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &fileStore{
		dir:    dir,
		logger: logger.With().Str("component", "file-store").Logger(),
	}, nil
}

// LoadCart reads the persisted cart record.
func (s *fileStore) LoadCart(ctx context.Context) ([]model.CartLine, error) {
	var lines []model.CartLine
	if _, err := s.readOptional(cartFile, &lines); err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines, nil
}

// SaveCart overwrites the persisted cart record.
func (s *fileStore) SaveCart(ctx context.Context, lines []model.CartLine) error {
	if lines == nil {
		lines = []model.CartLine{}
	}
	return s.write(cartFile, lines)
}

// LoadWishlist reads the persisted wishlist record.
func (s *fileStore) LoadWishlist(ctx context.Context) ([]model.WishlistEntry, error) {
	var entries []model.WishlistEntry
	if _, err := s.readOptional(wishlistFile, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.WishlistEntry{}
	}
	return entries, nil
}

// SaveWishlist overwrites the persisted wishlist record.
func (s *fileStore) SaveWishlist(ctx context.Context, entries []model.WishlistEntry) error {
	if entries == nil {
		entries = []model.WishlistEntry{}
	}
	return s.write(wishlistFile, entries)
}

// LoadInvoice reads the latest invoice, or nil when none exists.
func (s *fileStore) LoadInvoice(ctx context.Context) (*model.Invoice, error) {
	var inv model.Invoice
	found, err := s.readOptional(invoiceFile, &inv)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &inv, nil
}

// SaveInvoice overwrites the latest-invoice slot. A nil invoice removes
// the record.
func (s *fileStore) SaveInvoice(ctx context.Context, inv *model.Invoice) error {
	if inv == nil {
		path := filepath.Join(s.dir, invoiceFile)
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove invoice record: %w", err)
		}
		return nil
	}
	return s.write(invoiceFile, inv)
}

func (s *fileStore) readOptional(name string, v any) (bool, error) {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		s.logger.Error().Err(err).Str("file", name).Msg("failed to read record")
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Error().Err(err).Str("file", name).Msg("failed to decode record")
		return false, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	return true, nil
}

func (s *fileStore) write(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		s.logger.Error().Err(err).Str("file", name).Msg("failed to create temp file")
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		s.logger.Error().Err(err).Str("file", name).Msg("failed to write record")
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		s.logger.Error().Err(err).Str("file", name).Msg("failed to replace record")
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}

	s.logger.Debug().Str("file", name).Int("bytes", len(data)).Msg("record persisted")

	return nil
}
