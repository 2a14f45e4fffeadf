package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const productColumns = `
	p.id, p.title, p.description, p.price, p.original_price, p.category_id,
	p.condition, p.image_url, p.additional_images, p.seller_id, p.status,
	p.view_count, p.sustainability_score, p.location, p.created_at, p.updated_at,
	c.name, c.icon, u.username, u.avatar_url`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var images string
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.OriginalPrice, &p.CategoryID,
		&p.Condition, &p.ImageURL, &images, &p.SellerID, &p.Status,
		&p.ViewCount, &p.SustainabilityScore, &p.Location, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.CategoryIcon, &p.SellerUsername, &p.SellerAvatar,
	)
	if err != nil {
		return Product{}, err
	}
	if err := json.Unmarshal([]byte(images), &p.AdditionalImages); err != nil {
		p.AdditionalImages = []string{}
	}
	return p, nil
}

// List returns one page of available products plus the exact total for the
// same filter. viewerID scopes the wishlist flag; nil means anonymous.
func (r *Repo) List(ctx context.Context, f ListFilter, page, limit int, viewerID *int64) ([]Product, int, error) {
	where, args := f.whereClause(2)
	offset := (page - 1) * limit

	listQuery := fmt.Sprintf(`
		SELECT %s, (w.id IS NOT NULL) AS is_wishlisted
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN users u ON p.seller_id = u.id
		LEFT JOIN wishlist_items w ON p.id = w.product_id AND w.user_id = $1
		%s
		%s
		LIMIT $%d OFFSET $%d`,
		productColumns, where, f.orderClause(), 2+len(args), 3+len(args))

	listArgs := append([]any{viewerID}, args...)
	listArgs = append(listArgs, limit, offset)

	rows, err := r.DB.Query(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	for rows.Next() {
		var p Product
		var images string
		err := rows.Scan(
			&p.ID, &p.Title, &p.Description, &p.Price, &p.OriginalPrice, &p.CategoryID,
			&p.Condition, &p.ImageURL, &images, &p.SellerID, &p.Status,
			&p.ViewCount, &p.SustainabilityScore, &p.Location, &p.CreatedAt, &p.UpdatedAt,
			&p.CategoryName, &p.CategoryIcon, &p.SellerUsername, &p.SellerAvatar,
			&p.IsWishlisted,
		)
		if err != nil {
			return nil, 0, err
		}
		if err := json.Unmarshal([]byte(images), &p.AdditionalImages); err != nil {
			p.AdditionalImages = []string{}
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countWhere, countArgs := f.whereClause(1)
	var total int
	err = r.DB.QueryRow(ctx, "SELECT COUNT(*) FROM products p "+countWhere, countArgs...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Get fetches one available product with full enrichment and bumps its view
// counter unless the viewer is the seller. The increment is a single atomic
// UPDATE; the returned count reflects this request's bump.
func (r *Repo) Get(ctx context.Context, id int64, viewerID *int64) (Product, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			(w.id IS NOT NULL) AS is_wishlisted,
			(ci.id IS NOT NULL) AS is_in_cart
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN users u ON p.seller_id = u.id
		LEFT JOIN wishlist_items w ON p.id = w.product_id AND w.user_id = $1
		LEFT JOIN cart_items ci ON p.id = ci.product_id AND ci.user_id = $1
		WHERE p.id = $2 AND p.status = 'available'`, productColumns)

	var p Product
	var images string
	err := r.DB.QueryRow(ctx, query, viewerID, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.OriginalPrice, &p.CategoryID,
		&p.Condition, &p.ImageURL, &images, &p.SellerID, &p.Status,
		&p.ViewCount, &p.SustainabilityScore, &p.Location, &p.CreatedAt, &p.UpdatedAt,
		&p.CategoryName, &p.CategoryIcon, &p.SellerUsername, &p.SellerAvatar,
		&p.IsWishlisted, &p.IsInCart,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	if err != nil {
		return Product{}, err
	}
	if err := json.Unmarshal([]byte(images), &p.AdditionalImages); err != nil {
		p.AdditionalImages = []string{}
	}

	if viewerID == nil || *viewerID != p.SellerID {
		err := r.DB.QueryRow(ctx,
			`UPDATE products SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count`,
			id).Scan(&p.ViewCount)
		if err != nil {
			return Product{}, err
		}
	}
	return p, nil
}

// Related returns up to four newest available products sharing the category,
// excluding the product itself. No category means no siblings.
func (r *Repo) Related(ctx context.Context, productID int64, categoryID *int64) ([]RelatedProduct, error) {
	if categoryID == nil {
		return []RelatedProduct{}, nil
	}
	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.title, p.price, p.image_url, p.condition, c.name
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.category_id = $1 AND p.id != $2 AND p.status = 'available'
		ORDER BY p.created_at DESC
		LIMIT 4`, *categoryID, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RelatedProduct, 0, 4)
	for rows.Next() {
		var rp RelatedProduct
		if err := rows.Scan(&rp.ID, &rp.Title, &rp.Price, &rp.ImageURL, &rp.Condition, &rp.CategoryName); err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}

type CreateInput struct {
	Title            string
	Description      string
	Price            float64
	OriginalPrice    *float64
	CategoryID       int64
	Condition        Condition
	ImageURL         string
	AdditionalImages []string
	Location         string
}

// Create inserts the listing and credits the seller's listing reward in one
// transaction. The sustainability score is computed here, once.
func (r *Repo) Create(ctx context.Context, sellerID int64, in CreateInput) (int64, error) {
	var exists bool
	err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, in.CategoryID).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrInvalidCategory
	}

	score := SustainabilityScore(in.Price, in.OriginalPrice, in.Condition, in.Description)
	if in.AdditionalImages == nil {
		in.AdditionalImages = []string{}
	}
	images, err := json.Marshal(in.AdditionalImages)
	if err != nil {
		return 0, err
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO products (
			title, description, price, original_price, category_id,
			condition, image_url, additional_images, seller_id,
			sustainability_score, location
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id`,
		in.Title, in.Description, in.Price, in.OriginalPrice, in.CategoryID,
		string(in.Condition), in.ImageURL, string(images), sellerID,
		score, in.Location).Scan(&id)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx, `UPDATE users SET eco_points = eco_points + $1 WHERE id = $2`,
		ListingRewardPoints, sellerID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}

// GetAny fetches a product regardless of status, without a view bump. Used
// after create/update where the caller already owns the row.
func (r *Repo) GetAny(ctx context.Context, id int64) (Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN users u ON p.seller_id = u.id
		WHERE p.id = $1`, productColumns)
	p, err := scanProduct(r.DB.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, ErrNotFound
	}
	return p, err
}

// SellerOf reports who owns a product. Deleted rows still resolve so that
// ownership failures surface as 403 rather than 404.
func (r *Repo) SellerOf(ctx context.Context, id int64) (int64, error) {
	var sellerID int64
	err := r.DB.QueryRow(ctx, `SELECT seller_id FROM products WHERE id = $1`, id).Scan(&sellerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return sellerID, err
}

// UpdateInput carries the allow-listed mutable fields; nil means untouched.
type UpdateInput struct {
	Title            *string
	Description      *string
	Price            *float64
	OriginalPrice    *float64
	CategoryID       *int64
	Condition        *Condition
	ImageURL         *string
	AdditionalImages []string
	Location         *string
}

// Update applies the supplied fields and stamps updated_at. An empty input
// is rejected before touching the store.
func (r *Repo) Update(ctx context.Context, id int64, in UpdateInput) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, v)
	}

	if in.Title != nil {
		add("title", *in.Title)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}
	if in.Price != nil {
		add("price", *in.Price)
	}
	if in.OriginalPrice != nil {
		add("original_price", *in.OriginalPrice)
	}
	if in.CategoryID != nil {
		var exists bool
		err := r.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, *in.CategoryID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return ErrInvalidCategory
		}
		add("category_id", *in.CategoryID)
	}
	if in.Condition != nil {
		add("condition", string(*in.Condition))
	}
	if in.ImageURL != nil {
		add("image_url", *in.ImageURL)
	}
	if in.AdditionalImages != nil {
		b, err := json.Marshal(in.AdditionalImages)
		if err != nil {
			return err
		}
		add("additional_images", string(b))
	}
	if in.Location != nil {
		add("location", *in.Location)
	}
	if len(sets) == 0 {
		return ErrNoFields
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE products SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	ct, err := r.DB.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks the product deleted; the row stays for order history.
func (r *Repo) SoftDelete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx,
		`UPDATE products SET status = $1, updated_at = now() WHERE id = $2`,
		string(StatusDeleted), id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MyListings returns the seller's non-deleted products with wishlist demand.
func (r *Repo) MyListings(ctx context.Context, sellerID int64) ([]Listing, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.id, p.title, p.price, p.condition, p.image_url, p.view_count,
			p.status, p.created_at, c.name,
			COUNT(w.id) AS wishlist_count
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		LEFT JOIN wishlist_items w ON p.id = w.product_id
		WHERE p.seller_id = $1 AND p.status != 'deleted'
		GROUP BY p.id, c.name
		ORDER BY p.created_at DESC`, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Listing
	for rows.Next() {
		var l Listing
		err := rows.Scan(&l.ID, &l.Title, &l.Price, &l.Condition, &l.ImageURL,
			&l.ViewCount, &l.Status, &l.CreatedAt, &l.CategoryName, &l.WishlistCount)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *Repo) Categories(ctx context.Context) ([]Category, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, description, icon FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Icon); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
