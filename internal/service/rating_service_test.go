package service

import (
	"context"
	"testing"

	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paidOrder(t *testing.T, f *courseFixture, userID string) {
	t.Helper()
	require.NoError(t, f.orders.Create(&model.Order{
		UserID:   userID,
		CourseID: f.courseID,
		Amount:   "49.90",
		Status:   model.OrderPaid,
	}))
}

func TestRateRequiresPurchase(t *testing.T) {
	f := newCourseFixture(t)

	_, err := f.rating.Rate(context.Background(), "user-1", f.courseID, 5, "Excelente")
	assert.ErrorIs(t, err, util.ErrCourseNotPurchased)
}

func TestRateOncePerBuyer(t *testing.T) {
	f := newCourseFixture(t)
	paidOrder(t, f, "user-1")

	rating, err := f.rating.Rate(context.Background(), "user-1", f.courseID, 4, "Muy claro")
	require.NoError(t, err)
	assert.Equal(t, 4, rating.Rating)

	_, err = f.rating.Rate(context.Background(), "user-1", f.courseID, 5, "")
	assert.ErrorIs(t, err, util.ErrAlreadyRated)
}

func TestRateUnknownCourse(t *testing.T) {
	f := newCourseFixture(t)
	_, err := f.rating.Rate(context.Background(), "user-1", "missing", 5, "")
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestRatingAggregatesOntoCourse(t *testing.T) {
	f := newCourseFixture(t)
	paidOrder(t, f, "user-1")
	paidOrder(t, f, "user-2")

	_, err := f.rating.Rate(context.Background(), "user-1", f.courseID, 5, "")
	require.NoError(t, err)
	_, err = f.rating.Rate(context.Background(), "user-2", f.courseID, 4, "")
	require.NoError(t, err)

	course, err := f.courses.FindByID(f.courseID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, course.RatingAvg)
	assert.Equal(t, int64(2), course.RatingCount)

	ratings, err := f.rating.ListByCourse(f.courseID)
	require.NoError(t, err)
	assert.Len(t, ratings, 2)
}

func TestMyRating(t *testing.T) {
	f := newCourseFixture(t)
	paidOrder(t, f, "user-1")

	_, err := f.rating.MyRating("user-1", f.courseID)
	assert.ErrorIs(t, err, util.ErrRatingNotFound)

	_, err = f.rating.Rate(context.Background(), "user-1", f.courseID, 5, "Excelente")
	require.NoError(t, err)

	rating, err := f.rating.MyRating("user-1", f.courseID)
	require.NoError(t, err)
	assert.Equal(t, 5, rating.Rating)
	assert.Equal(t, "Excelente", rating.Comment)
}
