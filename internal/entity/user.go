package entity

import "time"

// Role is the account role carried in the JWT and checked per route group.
type Role string

const (
	RoleSuperAdmin Role = "superAdmin"
	RoleVendor     Role = "vendor"
	RoleCollector  Role = "collector"
	RoleCustomer   Role = "customer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleVendor, RoleCollector, RoleCustomer:
		return true
	}
	return false
}

// User account entity
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:32"`
	Name         string    `json:"name" gorm:"size:64;not null"`
	Email        string    `json:"email" gorm:"size:128;not null;uniqueIndex"`
	Phone        string    `json:"phone" gorm:"size:20;not null"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"`
	Role         Role      `json:"role" gorm:"size:16;not null"`
	IsActive     bool      `json:"is_active" gorm:"not null;default:false"` // gates login until approved
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
