package cart

import (
	"errors"
	"math"
	"time"

	"github.com/ecofinds/ecofinds-backend/internal/catalog"
)

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrOwnProduct         = errors.New("cannot add your own product")
	ErrLineNotFound       = errors.New("cart item not found")
	ErrAlreadyWishlisted  = errors.New("item already in wishlist")
	ErrNotWishlisted      = errors.New("item not found in wishlist")
)

const MaxQuantity = 10

// ClampQuantity merges a requested quantity into an existing line, silently
// capping at the per-line maximum instead of erroring on overflow.
func ClampQuantity(existing, requested int) int {
	q := existing + requested
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

type Line struct {
	CartID         int64             `json:"cart_id"`
	Quantity       int               `json:"quantity"`
	ProductID      int64             `json:"id"`
	Title          string            `json:"title"`
	Price          float64           `json:"price"`
	ImageURL       string            `json:"image_url"`
	Condition      catalog.Condition `json:"condition"`
	SellerID       int64             `json:"seller_id"`
	SellerUsername string            `json:"seller_username"`
	CategoryName   *string           `json:"category_name"`
}

type Summary struct {
	TotalItems  int     `json:"totalItems"`
	TotalAmount float64 `json:"totalAmount"`
}

// Summarize totals the live lines; the amount is rounded to cents.
func Summarize(lines []Line) Summary {
	var s Summary
	for _, l := range lines {
		s.TotalItems += l.Quantity
		s.TotalAmount += l.Price * float64(l.Quantity)
	}
	s.TotalAmount = math.Round(s.TotalAmount*100) / 100
	return s
}

type WishlistLine struct {
	WishlistID     int64             `json:"wishlist_id"`
	AddedAt        time.Time         `json:"added_at"`
	ProductID      int64             `json:"id"`
	Title          string            `json:"title"`
	Price          float64           `json:"price"`
	ImageURL       string            `json:"image_url"`
	Condition      catalog.Condition `json:"condition"`
	SellerID       int64             `json:"seller_id"`
	SellerUsername string            `json:"seller_username"`
	CategoryName   *string           `json:"category_name"`
	IsInCart       bool              `json:"is_in_cart"`
}
