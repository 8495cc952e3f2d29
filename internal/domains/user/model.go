package user

import (
	"time"

	"github.com/google/uuid"

	"golang.org/x/crypto/bcrypt"
)

// User is a staff account: producers, managers, and reviewers all resolve
// to User rows. Registration and profile management live elsewhere; this
// domain is the lookup surface for login and reference validation.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CheckPassword verifies a plaintext password against the stored hash.
// bcrypt comparison is constant-time.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
