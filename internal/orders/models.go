package orders

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrSelfPurchase rejects a checkout containing the buyer's own listing.
var ErrSelfPurchase = errors.New("cannot purchase your own product")

// UnavailableError names the product that blocked the whole checkout.
type UnavailableError struct {
	ProductID int64
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("product %d not found or not available", e.ProductID)
}

// PointsRate is the eco-point accrual per currency unit spent, floored.
const PointsRate = 0.10

func EcoPoints(amount float64) int {
	return int(math.Floor(amount * PointsRate))
}

type ItemInput struct {
	ProductID int64 `json:"product_id" validate:"required,min=1"`
	Quantity  int   `json:"quantity" validate:"required,min=1,max=10"`
}

// DuplicateProducts reports whether any product id appears twice; a product
// can satisfy only one order.
func DuplicateProducts(items []ItemInput) bool {
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if seen[it.ProductID] {
			return true
		}
		seen[it.ProductID] = true
	}
	return false
}

type CheckoutResult struct {
	OrderIDs        []int64 `json:"orderIds"`
	TotalAmount     float64 `json:"totalAmount"`
	EcoPointsEarned int     `json:"ecoPointsEarned"`

	// Lines feed the post-commit order event; not part of the API response.
	Lines []OrderLine `json:"-"`
}

// Purchase is a buyer-side history row.
type Purchase struct {
	ID              int64     `json:"id"`
	Quantity        int       `json:"quantity"`
	TotalAmount     float64   `json:"total_amount"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	EcoPointsEarned int       `json:"eco_points_earned"`
	CreatedAt       time.Time `json:"created_at"`
	ProductID       int64     `json:"product_id"`
	ProductTitle    string    `json:"product_title"`
	ProductImage    string    `json:"product_image"`
	SellerUsername  string    `json:"seller_username"`
	SellerName      string    `json:"seller_name"`
}

// Sale is the seller-side mirror of Purchase.
type Sale struct {
	ID            int64     `json:"id"`
	Quantity      int       `json:"quantity"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	ProductID     int64     `json:"product_id"`
	ProductTitle  string    `json:"product_title"`
	ProductImage  string    `json:"product_image"`
	BuyerUsername string    `json:"buyer_username"`
	BuyerName     string    `json:"buyer_name"`
}
