package service

import (
	"context"
	"errors"
	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/util"
	"math"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// RatingService lets buyers rate the courses they bought. The per-course
// average and count are denormalized onto the course row after every rating.
type RatingService struct {
	RatingRepo *repository.RatingRepository
	CourseRepo *repository.CourseRepository
	OrderRepo  *repository.OrderRepository
	Redis      *redis.Client
}

func NewRatingService(ratingRepo *repository.RatingRepository, courseRepo *repository.CourseRepository, orderRepo *repository.OrderRepository, rdb *redis.Client) *RatingService {
	return &RatingService{
		RatingRepo: ratingRepo,
		CourseRepo: courseRepo,
		OrderRepo:  orderRepo,
		Redis:      rdb,
	}
}

// Rate records a one-time rating. Only buyers with a paid order may rate,
// and only once per course.
func (s *RatingService) Rate(ctx context.Context, userID, courseID string, score int, comment string) (*model.CourseRating, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}

	paid, err := s.OrderRepo.HasPaidOrder(userID, courseID)
	if err != nil {
		return nil, err
	}
	if !paid {
		return nil, util.ErrCourseNotPurchased
	}

	if _, err := s.RatingRepo.FindByUserAndCourse(userID, courseID); err == nil {
		return nil, util.ErrAlreadyRated
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rating := &model.CourseRating{
		UserID:   userID,
		CourseID: courseID,
		Rating:   score,
		Comment:  comment,
	}
	if err := s.RatingRepo.Create(rating); err != nil {
		return nil, err
	}

	if avg, count, err := s.RatingRepo.Aggregate(courseID); err == nil {
		avg = math.Round(avg*100) / 100
		if err := s.CourseRepo.UpdateRating(courseID, avg, count); err == nil {
			// The detail view serves from cache; drop the stale copy.
			s.Redis.Del(ctx, "course:"+courseID)
		}
	}
	return rating, nil
}

func (s *RatingService) ListByCourse(courseID string) ([]model.CourseRating, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return nil, util.ErrCourseNotFound
	}
	return s.RatingRepo.ListByCourse(courseID)
}

func (s *RatingService) MyRating(userID, courseID string) (*model.CourseRating, error) {
	rating, err := s.RatingRepo.FindByUserAndCourse(userID, courseID)
	if err != nil {
		return nil, util.ErrRatingNotFound
	}
	return rating, nil
}
