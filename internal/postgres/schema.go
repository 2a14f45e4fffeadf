package postgres

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(20) NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		avatar_url VARCHAR(500) NOT NULL DEFAULT '',
		eco_points INTEGER NOT NULL DEFAULT 0,
		onboarded BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon VARCHAR(50) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL,
		original_price DOUBLE PRECISION,
		category_id BIGINT REFERENCES categories(id) ON DELETE SET NULL,
		condition VARCHAR(50) NOT NULL DEFAULT 'Good',
		image_url VARCHAR(500) NOT NULL DEFAULT '',
		additional_images TEXT NOT NULL DEFAULT '[]',
		seller_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status VARCHAR(20) NOT NULL DEFAULT 'available',
		view_count INTEGER NOT NULL DEFAULT 0,
		sustainability_score INTEGER NOT NULL DEFAULT 0,
		location VARCHAR(255) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS cart_items (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity BETWEEN 1 AND 10),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS wishlist_items (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, product_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id BIGSERIAL PRIMARY KEY,
		buyer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		seller_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		quantity INTEGER NOT NULL DEFAULT 1,
		total_amount DOUBLE PRECISION NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		payment_status VARCHAR(50) NOT NULL DEFAULT 'pending',
		shipping_address TEXT NOT NULL DEFAULT '',
		tracking_number VARCHAR(100) NOT NULL DEFAULT '',
		eco_points_earned INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGSERIAL PRIMARY KEY,
		reviewer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		seller_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		rating INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
		comment TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_status_created ON products (status, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_products_seller ON products (seller_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders (buyer_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_seller ON orders (seller_id, created_at DESC)`,
}

type seedCategory struct {
	name, description, icon string
}

var seedCategories = []seedCategory{
	{"Electronics", "Phones, laptops, gadgets", "smartphone"},
	{"Fashion", "Clothing, shoes, accessories", "shirt"},
	{"Home & Garden", "Furniture, decor, tools", "home"},
	{"Books", "Textbooks, novels, magazines", "book"},
	{"Sports", "Equipment, clothing, accessories", "dumbbell"},
	{"Toys & Games", "Kids toys, board games, puzzles", "gamepad-2"},
	{"Automotive", "Car parts, accessories", "car"},
	{"Art & Crafts", "Handmade items, supplies", "palette"},
}

// Migrate creates the schema and seeds the fixed category set. It runs at
// startup before the server accepts traffic and is safe to re-run.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range ddl {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	for _, c := range seedCategories {
		_, err := db.Exec(ctx, `
			INSERT INTO categories (name, description, icon)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING`,
			c.name, c.description, c.icon)
		if err != nil {
			return err
		}
	}
	log.Println("schema migrated, categories seeded")
	return nil
}
