package orders

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

type lockedItem struct {
	productID  int64
	sellerID   int64
	categoryID *int64
	quantity   int
	lineTotal  float64
}

// Checkout validates and settles every item inside one transaction: product
// rows are locked up front, orders inserted one per item, statuses flipped
// available -> sold, buyer points credited, ordered cart lines removed. Any
// failure rolls the whole thing back, so a checkout either fully succeeds or
// leaves no trace, and a locked row cannot be sold twice.
func (r *Repo) Checkout(ctx context.Context, buyerID int64, items []ItemInput, shippingAddress string) (CheckoutResult, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return CheckoutResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock in ascending product id order so two overlapping checkouts cannot
	// deadlock on each other.
	sorted := make([]ItemInput, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ProductID < sorted[j].ProductID })

	var grandTotal float64
	locked := make([]lockedItem, 0, len(sorted))
	for _, it := range sorted {
		var price float64
		var sellerID int64
		var categoryID *int64
		var status string
		err := tx.QueryRow(ctx,
			`SELECT price, seller_id, category_id, status FROM products WHERE id = $1 FOR UPDATE`,
			it.ProductID).Scan(&price, &sellerID, &categoryID, &status)
		if errors.Is(err, pgx.ErrNoRows) {
			return CheckoutResult{}, &UnavailableError{ProductID: it.ProductID}
		}
		if err != nil {
			return CheckoutResult{}, err
		}
		if status != "available" {
			return CheckoutResult{}, &UnavailableError{ProductID: it.ProductID}
		}
		if sellerID == buyerID {
			return CheckoutResult{}, ErrSelfPurchase
		}

		lineTotal := price * float64(it.Quantity)
		grandTotal += lineTotal
		locked = append(locked, lockedItem{
			productID:  it.ProductID,
			sellerID:   sellerID,
			categoryID: categoryID,
			quantity:   it.Quantity,
			lineTotal:  lineTotal,
		})
	}

	orderIDs := make([]int64, 0, len(locked))
	productIDs := make([]int64, 0, len(locked))
	lines := make([]OrderLine, 0, len(locked))
	for _, it := range locked {
		var orderID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (
				buyer_id, seller_id, product_id, quantity, total_amount,
				shipping_address, eco_points_earned
			) VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id`,
			buyerID, it.sellerID, it.productID, it.quantity, it.lineTotal,
			shippingAddress, EcoPoints(it.lineTotal)).Scan(&orderID)
		if err != nil {
			return CheckoutResult{}, err
		}
		orderIDs = append(orderIDs, orderID)
		productIDs = append(productIDs, it.productID)
		lines = append(lines, OrderLine{
			OrderID:    orderID,
			ProductID:  it.productID,
			CategoryID: it.categoryID,
			SellerID:   it.sellerID,
			Quantity:   it.quantity,
			LineTotal:  it.lineTotal,
		})

		if _, err := tx.Exec(ctx,
			`UPDATE products SET status = 'sold', updated_at = now() WHERE id = $1`,
			it.productID); err != nil {
			return CheckoutResult{}, err
		}
	}

	points := EcoPoints(grandTotal)
	if _, err := tx.Exec(ctx,
		`UPDATE users SET eco_points = eco_points + $1 WHERE id = $2`,
		points, buyerID); err != nil {
		return CheckoutResult{}, err
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1 AND product_id = ANY($2)`,
		buyerID, productIDs); err != nil {
		return CheckoutResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return CheckoutResult{}, err
	}
	return CheckoutResult{
		OrderIDs:        orderIDs,
		TotalAmount:     grandTotal,
		EcoPointsEarned: points,
		Lines:           lines,
	}, nil
}

// Purchases lists the buyer's order history, newest first.
func (r *Repo) Purchases(ctx context.Context, buyerID int64) ([]Purchase, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT o.id, o.quantity, o.total_amount, o.status, o.payment_status,
			o.eco_points_earned, o.created_at,
			p.id, p.title, p.image_url,
			u.username, u.full_name
		FROM orders o
		JOIN products p ON o.product_id = p.id
		JOIN users u ON o.seller_id = u.id
		WHERE o.buyer_id = $1
		ORDER BY o.created_at DESC`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Purchase, 0, 8)
	for rows.Next() {
		var p Purchase
		err := rows.Scan(&p.ID, &p.Quantity, &p.TotalAmount, &p.Status, &p.PaymentStatus,
			&p.EcoPointsEarned, &p.CreatedAt,
			&p.ProductID, &p.ProductTitle, &p.ProductImage,
			&p.SellerUsername, &p.SellerName)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Sales lists the seller's side of order history, newest first.
func (r *Repo) Sales(ctx context.Context, sellerID int64) ([]Sale, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT o.id, o.quantity, o.total_amount, o.status, o.payment_status,
			o.created_at,
			p.id, p.title, p.image_url,
			u.username, u.full_name
		FROM orders o
		JOIN products p ON o.product_id = p.id
		JOIN users u ON o.buyer_id = u.id
		WHERE o.seller_id = $1
		ORDER BY o.created_at DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Sale, 0, 8)
	for rows.Next() {
		var s Sale
		err := rows.Scan(&s.ID, &s.Quantity, &s.TotalAmount, &s.Status, &s.PaymentStatus,
			&s.CreatedAt,
			&s.ProductID, &s.ProductTitle, &s.ProductImage,
			&s.BuyerUsername, &s.BuyerName)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
