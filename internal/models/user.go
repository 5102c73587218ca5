package models

import "time"

type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleAdmin   UserRole = "ADMIN"
)

func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

type User struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email        string    `gorm:"column:email;type:text;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:text;not null" json:"-"`
	Role         UserRole  `gorm:"column:role;type:text;not null;default:STUDENT" json:"role"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`

	Profile *Profile `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}

func (User) TableName() string { return "users" }
