package service

import (
	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/util"
	"healthlearn_backend/pkg/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles course purchases. Payment capture is out of scope;
// orders move pending -> paid through the confirm endpoint, which is where
// a PSP callback would land.
type OrderService struct {
	OrderRepo  *repository.OrderRepository
	CourseRepo *repository.CourseRepository
}

func NewOrderService(orderRepo *repository.OrderRepository, courseRepo *repository.CourseRepository) *OrderService {
	return &OrderService{OrderRepo: orderRepo, CourseRepo: courseRepo}
}

// Enroll opens a pending order for the course at its current price. An
// existing pending order for the same course is returned instead of
// duplicated; an already-paid course is an error.
func (s *OrderService) Enroll(userID, courseID string) (*model.Order, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil || course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotFound
	}

	if paid, err := s.OrderRepo.HasPaidOrder(userID, courseID); err != nil {
		return nil, err
	} else if paid {
		return nil, util.ErrAlreadyPurchased
	}

	if pending, err := s.OrderRepo.FindPending(userID, courseID); err == nil {
		return pending, nil
	}

	amount := decimal.Zero
	if d, err := decimal.NewFromString(course.Precio); err == nil {
		amount = d
	}

	order := &model.Order{
		UserID:   userID,
		CourseID: courseID,
		Amount:   amount.StringFixed(2),
		Status:   model.OrderPending,
	}
	if err := s.OrderRepo.Create(order); err != nil {
		return nil, err
	}

	logger.Log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("course_id", courseID),
		zap.String("amount", order.Amount))
	return order, nil
}

// Confirm marks a pending order as paid. Only the order's owner may confirm.
func (s *OrderService) Confirm(userID, orderID string) (*model.Order, error) {
	order, err := s.OrderRepo.FindByID(orderID)
	if err != nil {
		return nil, util.ErrOrderNotFound
	}
	if order.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if order.Status != model.OrderPending {
		return order, nil
	}

	if err := s.OrderRepo.UpdateStatus(orderID, model.OrderPaid); err != nil {
		return nil, err
	}
	order.Status = model.OrderPaid
	return order, nil
}

func (s *OrderService) ListByUser(userID string) ([]model.Order, error) {
	return s.OrderRepo.ListByUser(userID)
}
