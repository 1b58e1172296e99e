package adapters

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/epiwatch/backend/internal/application/adapter"
)

// DefaultBcryptCost is used when the configured cost is out of range.
const DefaultBcryptCost = 12

const minPasswordLength = 8

var (
	errPasswordTooShort  = errors.New("password must be at least 8 characters long")
	errPasswordTooSimple = errors.New("password must contain a letter and a digit")
)

// BcryptHasher hashes passwords with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash implements adapter.PasswordHasher.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(hash), err
}

// Matches implements adapter.PasswordHasher.
func (h *BcryptHasher) Matches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Acceptable requires eight characters with at least one letter and one digit.
func (h *BcryptHasher) Acceptable(password string) error {
	if len(password) < minPasswordLength {
		return errPasswordTooShort
	}
	var letter, digit bool
	for _, r := range password {
		letter = letter || unicode.IsLetter(r)
		digit = digit || unicode.IsDigit(r)
	}
	if !letter || !digit {
		return errPasswordTooSimple
	}
	return nil
}

var _ adapter.PasswordHasher = (*BcryptHasher)(nil)
