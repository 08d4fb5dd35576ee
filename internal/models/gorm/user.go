package gorm

import (
	"aerocost/api/internal/constants"
	"time"
)

type User struct {
	ID           string             `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	Email        string             `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Name         string             `gorm:"column:name;not null" json:"name"`
	PasswordHash string             `gorm:"column:password_hash;not null" json:"-"`
	Role         constants.UserRole `gorm:"column:role;type:varchar(16);not null" json:"role"`
	IsActive     bool               `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

func (u User) IsAdmin() bool {
	return u.Role == constants.RoleAdmin
}
