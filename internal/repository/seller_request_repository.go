package repository

import (
	"healthlearn_backend/internal/model"

	"gorm.io/gorm"
)

type SellerRequestRepository struct {
	DB *gorm.DB
}

func NewSellerRequestRepository(db *gorm.DB) *SellerRequestRepository {
	return &SellerRequestRepository{DB: db}
}

func (r *SellerRequestRepository) Create(req *model.SellerRequest) error {
	return r.DB.Create(req).Error
}

func (r *SellerRequestRepository) FindByID(id string) (*model.SellerRequest, error) {
	var req model.SellerRequest
	err := r.DB.Preload("User").First(&req, "id = ?", id).Error
	return &req, err
}

func (r *SellerRequestRepository) HasPending(userID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.SellerRequest{}).
		Where("user_id = ? AND status = ?", userID, model.SellerRequestPending).
		Count(&count).Error
	return count > 0, err
}

func (r *SellerRequestRepository) ListPending() ([]model.SellerRequest, error) {
	var reqs []model.SellerRequest
	err := r.DB.Where("status = ?", model.SellerRequestPending).
		Preload("User").
		Order("created_at ASC").Find(&reqs).Error
	return reqs, err
}

// Resolve marks the request approved or rejected and, on approval, promotes
// the user to seller in the same transaction.
func (r *SellerRequestRepository) Resolve(req *model.SellerRequest, promote bool) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(req).Error; err != nil {
			return err
		}
		if promote {
			return tx.Model(&model.User{}).Where("id = ?", req.UserID).
				Update("role", model.Seller).Error
		}
		return nil
	})
}
