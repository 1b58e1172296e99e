// Package entity defines the core business entities for the domain layer.
package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserRole represents what a health worker is allowed to do.
type UserRole string

const (
	UserRoleDataEntry  UserRole = "data_entry"
	UserRoleSupervisor UserRole = "supervisor"
	UserRoleAdmin      UserRole = "admin"
)

// User is a health worker account. New accounts enter data only; supervisors
// and admins are promoted out of band.
type User struct {
	ID              uuid.UUID
	Email           string
	Name            string
	PasswordHash    string
	Role            UserRole
	TermsAcceptedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a data entry account that accepted the terms at now.
func NewUser(email, name, passwordHash string, now time.Time) *User {
	now = now.UTC()
	return &User{
		ID:              uuid.New(),
		Email:           NormalizeEmail(email),
		Name:            strings.TrimSpace(name),
		PasswordHash:    passwordHash,
		Role:            UserRoleDataEntry,
		TermsAcceptedAt: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether email looks like a deliverable address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
