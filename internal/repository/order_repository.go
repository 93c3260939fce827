package repository

import (
	"healthlearn_backend/internal/model"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Create(order *model.Order) error {
	return r.DB.Create(order).Error
}

func (r *OrderRepository) FindByID(id string) (*model.Order, error) {
	var order model.Order
	err := r.DB.Preload("Course").First(&order, "id = ?", id).Error
	return &order, err
}

func (r *OrderRepository) ListByUser(userID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.DB.Where("user_id = ?", userID).
		Preload("Course").
		Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// HasPaidOrder reports whether the user owns the course through a paid order.
func (r *OrderRepository) HasPaidOrder(userID, courseID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Order{}).
		Where("user_id = ? AND course_id = ? AND status = ?", userID, courseID, model.OrderPaid).
		Count(&count).Error
	return count > 0, err
}

func (r *OrderRepository) FindPending(userID, courseID string) (*model.Order, error) {
	var order model.Order
	err := r.DB.Where("user_id = ? AND course_id = ? AND status = ?",
		userID, courseID, model.OrderPending).First(&order).Error
	return &order, err
}

func (r *OrderRepository) UpdateStatus(id string, status model.OrderStatus) error {
	return r.DB.Model(&model.Order{}).Where("id = ?", id).
		Update("status", status).Error
}
