package model

import (
	"time"
)

type UserRole string

const (
	Buyer  UserRole = "buyer"
	Seller UserRole = "seller"
	Admin  UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Email            string               `gorm:"size:100;unique;not null" json:"email"`
	PasswordHash     string               `gorm:"size:100;not null" json:"-"`
	FullName         string               `gorm:"size:150" json:"full_name"`
	Role             UserRole             `gorm:"size:20;default:'buyer'" json:"role"`
	IsActive         bool                 `gorm:"default:true" json:"is_active"`
	ProfileCompleted bool                 `gorm:"default:false" json:"profile_completed"`
	Profile          *ProfessionalProfile `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Avatar           string               `gorm:"size:255" json:"avatar"`
	LastLogin        time.Time            `gorm:"default:CURRENT_TIMESTAMP" json:"last_login"`
}

func (User) TableName() string {
	return "users"
}
