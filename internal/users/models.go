package users

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicate     = errors.New("user with this email or username already exists")
	ErrUsernameTaken = errors.New("username is already taken")
	ErrNoFields      = errors.New("no fields to update")
)

// RegistrationBonusPoints seeds a new account's eco-point balance.
const RegistrationBonusPoints = 100

// User never serializes its credential hash.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	AvatarURL    string    `json:"avatar_url"`
	EcoPoints    int       `json:"eco_points"`
	Onboarded    bool      `json:"onboarded"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
