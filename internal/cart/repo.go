package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// checkAddable enforces the shared add rules for cart and wishlist: the
// product must exist, and must not belong to the caller. requireAvailable
// additionally filters sold/deleted products.
func (r *Repo) checkAddable(ctx context.Context, userID, productID int64, requireAvailable bool) error {
	var sellerID int64
	var status string
	err := r.DB.QueryRow(ctx,
		`SELECT seller_id, status FROM products WHERE id = $1`, productID).
		Scan(&sellerID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}
	if requireAvailable && status != "available" {
		return ErrProductUnavailable
	}
	if sellerID == userID {
		return ErrOwnProduct
	}
	return nil
}

// Add inserts or merges a cart line. A duplicate add never errors: the
// quantities merge under the per-line cap.
func (r *Repo) Add(ctx context.Context, userID, productID int64, quantity int) error {
	if err := r.checkAddable(ctx, userID, productID, true); err != nil {
		return err
	}

	var lineID int64
	var existing int
	err := r.DB.QueryRow(ctx,
		`SELECT id, quantity FROM cart_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID).Scan(&lineID, &existing)
	switch {
	case err == nil:
		_, err = r.DB.Exec(ctx, `UPDATE cart_items SET quantity = $1 WHERE id = $2`,
			ClampQuantity(existing, quantity), lineID)
		return err
	case errors.Is(err, pgx.ErrNoRows):
		_, err = r.DB.Exec(ctx,
			`INSERT INTO cart_items (user_id, product_id, quantity) VALUES ($1, $2, $3)`,
			userID, productID, quantity)
		return err
	default:
		return err
	}
}

// UpdateQuantity changes a line owned by the caller.
func (r *Repo) UpdateQuantity(ctx context.Context, userID, cartID int64, quantity int) error {
	ct, err := r.DB.Exec(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2 AND user_id = $3`,
		quantity, cartID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

func (r *Repo) Remove(ctx context.Context, userID, cartID int64) error {
	ct, err := r.DB.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, cartID, userID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrLineNotFound
	}
	return nil
}

// Lines returns the caller's cart joined with live product data. Lines whose
// product is no longer available are excluded from the response; the rows
// stay until removed explicitly or by checkout.
func (r *Repo) Lines(ctx context.Context, userID int64) ([]Line, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ci.id, ci.quantity,
			p.id, p.title, p.price, p.image_url, p.condition, p.seller_id,
			u.username, c.name
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		JOIN users u ON p.seller_id = u.id
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE ci.user_id = $1 AND p.status = 'available'
		ORDER BY ci.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]Line, 0, 8)
	for rows.Next() {
		var l Line
		err := rows.Scan(&l.CartID, &l.Quantity, &l.ProductID, &l.Title, &l.Price,
			&l.ImageURL, &l.Condition, &l.SellerID, &l.SellerUsername, &l.CategoryName)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// WishlistAdd rejects duplicates so the client can distinguish "already
// saved" from a fresh add.
func (r *Repo) WishlistAdd(ctx context.Context, userID, productID int64) error {
	if err := r.checkAddable(ctx, userID, productID, false); err != nil {
		return err
	}
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM wishlist_items WHERE user_id = $1 AND product_id = $2)`,
		userID, productID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyWishlisted
	}
	_, err = r.DB.Exec(ctx,
		`INSERT INTO wishlist_items (user_id, product_id) VALUES ($1, $2)`,
		userID, productID)
	return err
}

func (r *Repo) WishlistRemove(ctx context.Context, userID, productID int64) error {
	ct, err := r.DB.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`,
		userID, productID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotWishlisted
	}
	return nil
}

func (r *Repo) WishlistLines(ctx context.Context, userID int64) ([]WishlistLine, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT w.id, w.created_at,
			p.id, p.title, p.price, p.image_url, p.condition, p.seller_id,
			u.username, c.name,
			(ci.id IS NOT NULL) AS is_in_cart
		FROM wishlist_items w
		JOIN products p ON w.product_id = p.id
		JOIN users u ON p.seller_id = u.id
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN cart_items ci ON p.id = ci.product_id AND ci.user_id = w.user_id
		WHERE w.user_id = $1 AND p.status = 'available'
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]WishlistLine, 0, 8)
	for rows.Next() {
		var l WishlistLine
		err := rows.Scan(&l.WishlistID, &l.AddedAt, &l.ProductID, &l.Title, &l.Price,
			&l.ImageURL, &l.Condition, &l.SellerID, &l.SellerUsername, &l.CategoryName, &l.IsInCart)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
