package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalogue product. The cart core only consumes it
// to snapshot CartLine and WishlistEntry fields at add time.
type Product struct {
	ID          string          `json:"productId" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Category    string          `json:"category" db:"category"`
	ImageURL    string          `json:"imageUrl" db:"image_url"`
	Price       decimal.Decimal `json:"price" db:"price"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// ProductPage is the catalogue query response shape.
type ProductPage struct {
	Data       []Product `json:"data"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
}

// CartLine builds a new cart line from the product with the given
// quantity, snapshotting the current price.
func (p Product) CartLine(quantity int) CartLine {
	return CartLine{
		ProductID: p.ID,
		Title:     p.Title,
		ImageURL:  p.ImageURL,
		UnitPrice: p.Price,
		Quantity:  quantity,
	}
}

// WishlistEntry builds a wishlist entry from the product.
func (p Product) WishlistEntry() WishlistEntry {
	return WishlistEntry{
		ProductID: p.ID,
		Title:     p.Title,
		ImageURL:  p.ImageURL,
		UnitPrice: p.Price,
	}
}
