package repository

import (
	"healthlearn_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CreateWithChildren persists a course and its sections, videos and
// bibliography atomically. Used by draft submission.
func (r *CourseRepository) CreateWithChildren(course *model.Course) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(course).Error
	})
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("orden ASC") }).
		Preload("Bibliography").
		Preload("Seller").
		First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) ListPublished(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64

	q := r.DB.Model(&model.Course{}).
		Where("status = ? AND visibilidad = ?", model.CoursePublished, model.VisibilityPublico)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListBySeller(sellerID string) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("seller_id = ?", sellerID).
		Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListByStatus(status model.CourseStatus) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Where("status = ?", status).
		Preload("Seller").
		Order("created_at ASC").Find(&courses).Error
	return courses, err
}

// UpdateRating writes the denormalized rating summary of a course.
func (r *CourseRepository) UpdateRating(id string, avg float64, count int64) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", id).
		Updates(map[string]interface{}{"rating_avg": avg, "rating_count": count}).Error
}

func (r *CourseRepository) UpdateStatus(id string, status model.CourseStatus) error {
	return r.DB.Model(&model.Course{}).Where("id = ?", id).
		Update("status", status).Error
}
