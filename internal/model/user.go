package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role determines visibility and mutation rights across the store
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Account status values
const (
	StatusActive  = "ACTIVE"
	StatusBlocked = "BLOCKED"
)

// User represents an authenticated account in the system
type User struct {
	BaseModel
	Name          string `gorm:"type:varchar(255);not null" json:"name,omitempty" validate:"required"`
	Email         string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email,omitempty" validate:"required,email"`
	Password      string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Phone         string `gorm:"type:varchar(20)" json:"phone,omitempty" validate:"required"`
	Role          Role   `gorm:"type:varchar(20);default:'CUSTOMER'" json:"role,omitempty"`
	Status        string `gorm:"type:varchar(20);default:'ACTIVE'" json:"status,omitempty"`
	EmailVerified bool   `gorm:"default:false" json:"email_verified"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Role          Role      `json:"role"`
	Status        string    `json:"status"`
	EmailVerified bool      `json:"email_verified"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          u.Role,
		Status:        u.Status,
		EmailVerified: u.EmailVerified,
	}
}
