package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CartLine is one product entry in the shopping cart. The unit price is
// snapshotted when the line is added and never re-fetched from the
// catalogue afterwards.
type CartLine struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	ImageURL  string          `json:"imageUrl"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// WishlistEntry is a saved product without a quantity.
type WishlistEntry struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	ImageURL  string          `json:"imageUrl"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// cartLineRecord accepts every field-name variant seen in persisted
// records. Casing variants (price/Price, image/Image) are already folded
// together by encoding/json's case-insensitive matching; the alternate
// names need their own fields.
type cartLineRecord struct {
	ProductID string          `json:"productId"`
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	ImageURL  string          `json:"imageUrl"`
	Image     string          `json:"image"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// UnmarshalJSON normalises any accepted persisted shape to the canonical
// CartLine. This is the single tolerant-read point; the rest of the core
// only ever sees the canonical shape.
func (c *CartLine) UnmarshalJSON(data []byte) error {
	var rec cartLineRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	c.ProductID = rec.ProductID
	if c.ProductID == "" {
		c.ProductID = rec.ID
	}
	c.Title = rec.Title
	c.ImageURL = rec.ImageURL
	if c.ImageURL == "" {
		c.ImageURL = rec.Image
	}
	c.UnitPrice = rec.UnitPrice
	if c.UnitPrice.IsZero() {
		c.UnitPrice = rec.Price
	}
	c.Quantity = rec.Quantity
	if c.Quantity < 1 {
		c.Quantity = 1
	}

	return nil
}

// UnmarshalJSON applies the same normalisation as CartLine.
func (w *WishlistEntry) UnmarshalJSON(data []byte) error {
	var rec cartLineRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	w.ProductID = rec.ProductID
	if w.ProductID == "" {
		w.ProductID = rec.ID
	}
	w.Title = rec.Title
	w.ImageURL = rec.ImageURL
	if w.ImageURL == "" {
		w.ImageURL = rec.Image
	}
	w.UnitPrice = rec.UnitPrice
	if w.UnitPrice.IsZero() {
		w.UnitPrice = rec.Price
	}

	return nil
}

// LineTotal returns unit price times quantity.
func (c CartLine) LineTotal() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
