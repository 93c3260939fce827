package repository

import (
	"healthlearn_backend/internal/model"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

func (r *FavoriteRepository) Add(userID, courseID string) error {
	return r.DB.Create(&model.Favorite{UserID: userID, CourseID: courseID}).Error
}

func (r *FavoriteRepository) Remove(userID, courseID string) error {
	return r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.Favorite{}).Error
}

func (r *FavoriteRepository) Exists(userID, courseID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Favorite{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepository) ListByUser(userID string) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.DB.Where("user_id = ?", userID).
		Preload("Course").
		Order("created_at DESC").Find(&favorites).Error
	return favorites, err
}
