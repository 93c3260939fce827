package repository

import (
	"healthlearn_backend/internal/model"

	"gorm.io/gorm"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

func (r *RatingRepository) Create(rating *model.CourseRating) error {
	return r.DB.Create(rating).Error
}

func (r *RatingRepository) FindByUserAndCourse(userID, courseID string) (*model.CourseRating, error) {
	var rating model.CourseRating
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *RatingRepository) ListByCourse(courseID string) ([]model.CourseRating, error) {
	var ratings []model.CourseRating
	err := r.DB.Where("course_id = ?", courseID).
		Order("created_at DESC").Find(&ratings).Error
	return ratings, err
}

// Aggregate returns the average rating and the number of ratings of a
// course, zero when there are none.
func (r *RatingRepository) Aggregate(courseID string) (float64, int64, error) {
	var agg struct {
		Avg   float64
		Total int64
	}
	err := r.DB.Model(&model.CourseRating{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(id) AS total").
		Scan(&agg).Error
	return agg.Avg, agg.Total, err
}
