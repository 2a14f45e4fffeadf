package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNoFields        = errors.New("no fields to update")
)

type Condition string

const (
	ConditionNew     Condition = "New"
	ConditionLikeNew Condition = "Like New"
	ConditionGood    Condition = "Good"
	ConditionFair    Condition = "Fair"
	ConditionPoor    Condition = "Poor"
)

func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusSold      Status = "sold"
	StatusDeleted   Status = "deleted"
)

// Products leave the available state exactly once; sold and deleted are
// terminal for buyer-facing reads.
var validNext = map[Status]map[Status]bool{
	StatusAvailable: {StatusSold: true, StatusDeleted: true},
	StatusSold:      {},
	StatusDeleted:   {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

type Product struct {
	ID                  int64     `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Price               float64   `json:"price"`
	OriginalPrice       *float64  `json:"original_price"`
	CategoryID          *int64    `json:"category_id"`
	Condition           Condition `json:"condition"`
	ImageURL            string    `json:"image_url"`
	AdditionalImages    []string  `json:"additional_images"`
	SellerID            int64     `json:"seller_id"`
	Status              Status    `json:"status"`
	ViewCount           int       `json:"view_count"`
	SustainabilityScore int       `json:"sustainability_score"`
	Location            string    `json:"location"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`

	CategoryName   *string `json:"category_name"`
	CategoryIcon   *string `json:"category_icon"`
	SellerUsername string  `json:"seller_username"`
	SellerAvatar   string  `json:"seller_avatar"`
	IsWishlisted   bool    `json:"is_wishlisted"`
	IsInCart       bool    `json:"is_in_cart,omitempty"`
}

// RelatedProduct is the trimmed shape shown under a product detail page.
type RelatedProduct struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"image_url"`
	Condition    Condition `json:"condition"`
	CategoryName *string   `json:"category_name"`
}

// Listing is a seller-facing row with wishlist demand attached.
type Listing struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Price         float64   `json:"price"`
	Condition     Condition `json:"condition"`
	ImageURL      string    `json:"image_url"`
	ViewCount     int       `json:"view_count"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	CategoryName  *string   `json:"category_name"`
	WishlistCount int       `json:"wishlist_count"`
}

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}
