package domain

import (
	"net/mail"
	"strings"
	"time"
)

type Role string

const (
	RoleMember Role = "MEMBER"
	RoleAdmin  Role = "ADMIN"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleMember, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateUserParams is what a UsersRepository needs to persist a user.
type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
	Role         Role
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserProfile struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	MinPasswordLength = 6
	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72
)

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return invalid("password", "must be at least 6 characters")
	}
	if len(password) > MaxPasswordBytes {
		return invalid("password", "must be at most 72 bytes")
	}
	return nil
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return invalid("name", "is required")
	}
	if !isValidEmail(r.Email) {
		return invalid("email", "invalid email format")
	}
	return validatePassword(r.Password)
}

func (r *AuthenticateRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *AuthenticateRequest) Validate() error {
	if !isValidEmail(r.Email) {
		return invalid("email", "invalid email format")
	}
	return validatePassword(r.Password)
}

// ToProfile strips the password hash.
func (u *User) ToProfile() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at > 0 && strings.Contains(email[at:], ".")
}
