package models

import "time"

// Role is the closed set of account roles. Route-level authorization takes
// allowed roles as compile-time data, never as request input.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// AuthProvider distinguishes password accounts from OAuth-created ones.
// OAuth-only accounts carry a NULL password hash and must never pass a
// password login.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	UserID       uint         `gorm:"column:user_id;primaryKey" json:"user_id"`
	Name         string       `gorm:"not null" json:"name"`
	Email        string       `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash *string      `json:"-"`
	AuthProvider AuthProvider `gorm:"default:'local'" json:"-"`
	Role         Role         `gorm:"default:'student'" json:"role"`
	Verified     bool         `gorm:"default:false" json:"verified"`
	HostelBlock  *string      `json:"hostel_block,omitempty"`
	RoomNo       *string      `json:"room_no,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// OAuthOnly reports whether the account was created through an identity
// provider and has no usable password.
func (u *User) OAuthOnly() bool {
	return u.AuthProvider != ProviderLocal || u.PasswordHash == nil
}
