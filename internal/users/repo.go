package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const userColumns = `id, username, email, password_hash, full_name, phone,
	address, avatar_url, eco_points, onboarded, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.Phone, &u.Address, &u.AvatarURL, &u.EcoPoints, &u.Onboarded,
		&u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// Create registers a user with the starting eco-point bonus. Duplicate
// email or username reports a conflict before the insert is attempted.
func (r *Repo) Create(ctx context.Context, username, email, passwordHash, fullName string) (User, error) {
	var exists bool
	err := r.DB.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username).Scan(&exists)
	if err != nil {
		return User{}, err
	}
	if exists {
		return User{}, ErrDuplicate
	}

	row := r.DB.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO users (username, email, password_hash, full_name, eco_points, onboarded)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING %s`, userColumns),
		username, email, passwordHash, fullName, RegistrationBonusPoints)
	return scanUser(row)
}

func (r *Repo) ByID(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *Repo) ByEmail(ctx context.Context, email string) (User, error) {
	u, err := scanUser(r.DB.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns), email))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

// ProfileUpdate carries the mutable profile fields; nil means untouched.
type ProfileUpdate struct {
	Username  *string
	FullName  *string
	Phone     *string
	Address   *string
	AvatarURL *string
	Onboarded *bool
}

// UpdateProfile applies the supplied fields after re-checking username
// uniqueness, then stamps updated_at.
func (r *Repo) UpdateProfile(ctx context.Context, id int64, in ProfileUpdate) (User, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)+1))
		args = append(args, v)
	}

	if in.Username != nil {
		var taken bool
		err := r.DB.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id != $2)`,
			*in.Username, id).Scan(&taken)
		if err != nil {
			return User{}, err
		}
		if taken {
			return User{}, ErrUsernameTaken
		}
		add("username", *in.Username)
	}
	if in.FullName != nil {
		add("full_name", *in.FullName)
	}
	if in.Phone != nil {
		add("phone", *in.Phone)
	}
	if in.Address != nil {
		add("address", *in.Address)
	}
	if in.AvatarURL != nil {
		add("avatar_url", *in.AvatarURL)
	}
	if in.Onboarded != nil {
		add("onboarded", *in.Onboarded)
	}
	if len(sets) == 0 {
		return User{}, ErrNoFields
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	row := r.DB.QueryRow(ctx, fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userColumns), args...)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (r *Repo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	ct, err := r.DB.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2`,
		passwordHash, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
