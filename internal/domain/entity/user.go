package entity

import "time"

// Role distinguishes buyers from sellers. Sellers gain catalog-write
// privileges, which is why their registration is OTP-gated.
type Role string

const (
	RoleNormal Role = "NORMAL"
	RoleSeller Role = "SELLER"
)

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	switch r {
	case RoleNormal, RoleSeller:
		return true
	}
	return false
}

// User is the aggregate root for the identity domain.
// Password holds a bcrypt hash, never plaintext.
type User struct {
	ID         string
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Phone      string
	Role       Role
	IsVerified bool
	IsStaff    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullName joins the name fields for display and email greetings.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
