package service

import (
	"context"
	"encoding/json"
	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/util"
	"healthlearn_backend/pkg/logger"
	"healthlearn_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const courseCacheTTL = 5 * time.Minute

// CourseService serves the public catalog, the gated course detail view and
// the admin review pipeline.
type CourseService struct {
	CourseRepo   *repository.CourseRepository
	OrderRepo    *repository.OrderRepository
	FavoriteRepo *repository.FavoriteRepository
	Access       *AccessService
	Redis        *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, orderRepo *repository.OrderRepository, favoriteRepo *repository.FavoriteRepository, access *AccessService, rdb *redis.Client) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		OrderRepo:    orderRepo,
		FavoriteRepo: favoriteRepo,
		Access:       access,
		Redis:        rdb,
	}
}

// CourseList is one catalog page.
type CourseList struct {
	Courses []model.Course `json:"courses"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}

func (s *CourseService) ListPublished(page, limit int) (*CourseList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	courses, total, err := s.CourseRepo.ListPublished(page, limit)
	if err != nil {
		return nil, err
	}
	return &CourseList{Courses: courses, Total: total, Page: page, Limit: limit}, nil
}

// CourseDetail is the gated detail view. When the gate blocks, the heavy
// content (videos, bibliography, long description) is stripped and the
// decision tells the client which overlay to show.
type CourseDetail struct {
	Course     *model.Course `json:"course"`
	Gate       GateDecision  `json:"gate"`
	IsFavorite bool          `json:"is_favorite"`
	Purchased  bool          `json:"purchased"`
}

// GetDetail loads a course, evaluates the access gate for the viewer and
// strips gated content when blocked. user is nil for anonymous viewers.
func (s *CourseService) GetDetail(ctx context.Context, courseID string, user *model.User) (*CourseDetail, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}

	gate := s.Access.Evaluate(s.Access.InputForCourse(course, user))
	monitoring.GateDecisions.WithLabelValues(gate.Outcome()).Inc()

	detail := &CourseDetail{Course: course, Gate: gate}
	if user != nil {
		if fav, err := s.FavoriteRepo.Exists(user.ID, courseID); err == nil {
			detail.IsFavorite = fav
		}
		if paid, err := s.OrderRepo.HasPaidOrder(user.ID, courseID); err == nil {
			detail.Purchased = paid
		}
	}

	if gate.Show {
		stripped := *course
		stripped.Videos = nil
		stripped.Bibliography = nil
		stripped.QueAprendera = ""
		stripped.Requisitos = ""
		stripped.DirigidoA = ""
		stripped.Metodologia = ""
		detail.Course = &stripped
	}
	return detail, nil
}

// CourseContent is the protected program listing of a course.
type CourseContent struct {
	Sections []model.CourseSection `json:"sections"`
	Videos   []model.CourseVideo   `json:"videos"`
}

// GetContent returns the course program only when the gate lets the viewer
// through. Blocked viewers get the decision back alongside
// ErrPermissionDenied so the transport can answer 401 or 403.
func (s *CourseService) GetContent(ctx context.Context, courseID string, user *model.User) (*CourseContent, GateDecision, error) {
	course, err := s.loadCourse(ctx, courseID)
	if err != nil {
		return nil, GateDecision{}, util.ErrCourseNotFound
	}

	gate := s.Access.Evaluate(s.Access.InputForCourse(course, user))
	monitoring.GateDecisions.WithLabelValues(gate.Outcome()).Inc()
	if gate.Show {
		return nil, gate, util.ErrPermissionDenied
	}
	return &CourseContent{Sections: course.Sections, Videos: course.Videos}, gate, nil
}

// loadCourse goes through the Redis cache; only published courses are
// cached since review-state courses change often.
func (s *CourseService) loadCourse(ctx context.Context, id string) (*model.Course, error) {
	key := "course:" + id
	if raw, err := s.Redis.Get(ctx, key).Result(); err == nil {
		var cached model.Course
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return &cached, nil
		}
	}

	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if course.Status == model.CoursePublished {
		if raw, err := json.Marshal(course); err == nil {
			s.Redis.Set(ctx, key, raw, courseCacheTTL)
		}
	}
	return course, nil
}

func (s *CourseService) invalidate(ctx context.Context, id string) {
	s.Redis.Del(ctx, "course:"+id)
}

func (s *CourseService) ListBySeller(sellerID string) ([]model.Course, error) {
	return s.CourseRepo.ListBySeller(sellerID)
}

// ListInReview returns the admin review queue, oldest first.
func (s *CourseService) ListInReview() ([]model.Course, error) {
	return s.CourseRepo.ListByStatus(model.CourseInReview)
}

// Review resolves an in-review course. approve moves it to published,
// otherwise to rejected.
func (s *CourseService) Review(ctx context.Context, courseID string, approve bool) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, util.ErrCourseNotFound
	}
	if course.Status != model.CourseInReview {
		return nil, util.ErrCourseNotFound
	}

	status := model.CourseRejected
	if approve {
		status = model.CoursePublished
	}
	if err := s.CourseRepo.UpdateStatus(courseID, status); err != nil {
		return nil, err
	}
	course.Status = status
	s.invalidate(ctx, courseID)

	logger.Log.Info("course reviewed",
		zap.String("course_id", courseID),
		zap.String("status", string(status)))
	return course, nil
}

// ToggleFavorite adds or removes the course from the user's favorites and
// reports the resulting state.
func (s *CourseService) ToggleFavorite(userID, courseID string) (bool, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return false, util.ErrCourseNotFound
	}
	exists, err := s.FavoriteRepo.Exists(userID, courseID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, s.FavoriteRepo.Remove(userID, courseID)
	}
	return true, s.FavoriteRepo.Add(userID, courseID)
}

// Unfavorite removes the course from the user's favorites. Removing a course
// that was never favorited is a no-op.
func (s *CourseService) Unfavorite(userID, courseID string) error {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		return util.ErrCourseNotFound
	}
	return s.FavoriteRepo.Remove(userID, courseID)
}

func (s *CourseService) ListFavorites(userID string) ([]model.Favorite, error) {
	return s.FavoriteRepo.ListByUser(userID)
}
