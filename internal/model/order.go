package model

type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)

// swagger:model Order
type Order struct {
	UUIDBase
	UserID   string      `gorm:"size:36;index;not null" json:"user_id"`
	CourseID string      `gorm:"size:36;index;not null" json:"course_id"`
	Course   *Course     `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	Amount   string      `gorm:"size:20" json:"amount"`
	Status   OrderStatus `gorm:"size:20;default:'pending'" json:"status"`
}

func (Order) TableName() string {
	return "orders"
}
