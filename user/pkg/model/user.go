package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/validate"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a profile record read by authentication and profile services. The
// password never leaves the process through JSON or logs.
type User struct {
	ID        string     `validate:"required"                json:"id"`
	FullName  string     `validate:"required"                json:"full_name"`
	Email     string     `validate:"required,email"          json:"email"`
	Phone     string     `validate:"omitempty,e164"          json:"phone,omitempty"`
	Website   string     `validate:"omitempty,url"           json:"website,omitempty"`
	Address   string     `json:"address,omitempty"`
	Password  string     `json:"password,omitempty"`
	Image     string     `validate:"omitempty,uri"           json:"image,omitempty"`
	Role      Role       `validate:"required,oneof=user admin" json:"role"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (u User) MarshalZerologObject(e *zerolog.Event) {
	e.Str("id", u.ID).
		Str("email", u.Email).
		Str("role", string(u.Role)).
		Str("password", "***")
}

func (u User) MarshalJSON() ([]byte, error) {
	if u.Password != "" {
		u.Password = "***"
	}
	type U User
	return json.Marshal(U(u))
}

func (u User) Validate() error {
	if !u.Role.Valid() {
		return fmt.Errorf("role=%s with error=%w", u.Role, inErrors.ErrInvalidRole)
	}
	return validate.Get().Struct(u)
}

// HashPassword replaces the plain password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed hashing password with error=%w", err)
	}
	u.Password = string(hashed)
	return nil
}

func (u User) ComparePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}
