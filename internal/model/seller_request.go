package model

import "time"

type SellerRequestStatus string

const (
	SellerRequestPending  SellerRequestStatus = "pending"
	SellerRequestApproved SellerRequestStatus = "approved"
	SellerRequestRejected SellerRequestStatus = "rejected"
)

// swagger:model SellerRequest
type SellerRequest struct {
	UUIDBase
	UserID     string              `gorm:"size:36;index;not null" json:"user_id"`
	User       *User               `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status     SellerRequestStatus `gorm:"size:20;default:'pending'" json:"status"`
	ReviewedBy string              `gorm:"size:36" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time          `json:"reviewed_at,omitempty"`
}

func (SellerRequest) TableName() string {
	return "seller_requests"
}
