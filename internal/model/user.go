package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an employee account in the suite
type User struct {
	BaseModel
	Email        string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string      `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName     string      `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	PhoneNumber  string      `gorm:"type:varchar(20)" json:"phone_number"`
	RoleID       *uint       `gorm:"index" json:"role_id"`
	Role         *RoleRecord `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	DepartmentID *uuid.UUID  `gorm:"type:uuid;index" json:"department_id,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Position     string      `gorm:"type:varchar(100)" json:"position"`
	HireDate     *time.Time  `gorm:"type:date" json:"hire_date,omitempty"`
	BaseSalary   float64     `gorm:"type:numeric(14,2);default:0" json:"base_salary"`
	Allowance    float64     `gorm:"type:numeric(14,2);default:0" json:"allowance"`
	IsActive     bool        `gorm:"default:true" json:"is_active"`
	Privileges   []Privilege `gorm:"many2many:user_privileges;" json:"privileges,omitempty"`
	TokenVersion string      `gorm:"type:varchar(255);default:''" json:"-"` // Single active credential per user
	LastSeenAt   *time.Time  `json:"last_seen_at,omitempty"`
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

// RoleCode returns the user's role, or the empty Role when unassigned.
func (u *User) RoleCode() Role {
	if u.Role == nil {
		return ""
	}
	return u.Role.Code
}

// HasPrivilege checks if the user has a specific privilege
func (u *User) HasPrivilege(code string) bool {
	for _, p := range u.Privileges {
		if p.Code == code {
			return true
		}
	}
	return false
}

// GetPrivilegeCodes returns a slice of all privilege codes for this user
func (u *User) GetPrivilegeCodes() []string {
	codes := make([]string, len(u.Privileges))
	for i, p := range u.Privileges {
		codes[i] = p.Code
	}
	return codes
}

// Identity is the wire shape shared by the login and /auth/me
// responses. The _id key is kept for compatibility with the dashboard
// clients.
type Identity struct {
	ID         uuid.UUID `json:"_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Department string    `json:"department,omitempty"`
}

// ToIdentity converts a User to its session Identity.
func (u *User) ToIdentity() Identity {
	ident := Identity{
		ID:    u.ID,
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.RoleCode(),
	}
	if u.Department != nil {
		ident.Department = u.Department.Name
	}
	return ident
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	FullName     string      `json:"full_name"`
	PhoneNumber  string      `json:"phone_number"`
	RoleID       *uint       `json:"role_id,omitempty"`
	Role         *RoleRecord `json:"role,omitempty"`
	Department   *Department `json:"department,omitempty"`
	Position     string      `json:"position"`
	HireDate     *time.Time  `json:"hire_date,omitempty"`
	BaseSalary   float64     `json:"base_salary"`
	Allowance    float64     `json:"allowance"`
	IsActive     bool        `json:"is_active"`
	LastSeenAt   *time.Time  `json:"last_seen_at,omitempty"`
	Privileges   []Privilege `json:"privileges"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		RoleID:      u.RoleID,
		Role:        u.Role,
		Department:  u.Department,
		Position:    u.Position,
		HireDate:    u.HireDate,
		BaseSalary:  u.BaseSalary,
		Allowance:   u.Allowance,
		IsActive:    u.IsActive,
		LastSeenAt:  u.LastSeenAt,
		Privileges:  u.Privileges,
	}
}
