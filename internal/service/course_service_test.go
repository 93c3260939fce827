package service

import (
	"context"
	"testing"

	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"gorm.io/driver/sqlite"
)

type courseFixture struct {
	db       *gorm.DB
	courses  *repository.CourseRepository
	orders   *repository.OrderRepository
	favs     *repository.FavoriteRepository
	ratings  *repository.RatingRepository
	svc      *CourseService
	rating   *RatingService
	courseID string
}

// newCourseFixture seeds one published, fully protected course. The redis
// client points at a closed port, so every cache access is a miss; the
// service must work regardless.
func newCourseFixture(t *testing.T) *courseFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.CourseSection{},
		&model.CourseVideo{},
		&model.CourseBibliography{},
		&model.Order{},
		&model.Favorite{},
		&model.CourseRating{},
	))

	f := &courseFixture{
		db:      db,
		courses: repository.NewCourseRepository(db),
		orders:  repository.NewOrderRepository(db),
		favs:    repository.NewFavoriteRepository(db),
		ratings: repository.NewRatingRepository(db),
	}
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	f.svc = NewCourseService(f.courses, f.orders, f.favs, NewAccessService(), rdb)
	f.rating = NewRatingService(f.ratings, f.courses, f.orders, rdb)

	course := &model.Course{
		Titulo:          "ECG básico",
		Precio:          "49.90",
		TipoAcceso:      model.AccessPagoUnico,
		Visibilidad:     model.VisibilityPublico,
		Status:          model.CoursePublished,
		IsProtected:     true,
		RequiresProfile: true,
		SellerID:        "seller-1",
		QueAprendera:    "Interpretar trazados",
		Videos:          []model.CourseVideo{{Titulo: "Derivaciones"}},
	}
	require.NoError(t, f.courses.CreateWithChildren(course))
	f.courseID = course.ID
	return f
}

func TestGetDetailAnonymousIsBlockedForLogin(t *testing.T) {
	f := newCourseFixture(t)

	detail, err := f.svc.GetDetail(context.Background(), f.courseID, nil)
	require.NoError(t, err)

	assert.Equal(t, "block-for-login", detail.Gate.Outcome())
	// Gated content is stripped from the response.
	assert.Empty(t, detail.Course.Videos)
	assert.Empty(t, detail.Course.QueAprendera)
	// The card-level fields survive for the preview.
	assert.Equal(t, "ECG básico", detail.Course.Titulo)
}

func TestGetDetailProfileGate(t *testing.T) {
	f := newCourseFixture(t)
	user := &model.User{ProfileCompleted: false}

	detail, err := f.svc.GetDetail(context.Background(), f.courseID, user)
	require.NoError(t, err)
	assert.Equal(t, "block-for-profile", detail.Gate.Outcome())

	user.ProfileCompleted = true
	detail, err = f.svc.GetDetail(context.Background(), f.courseID, user)
	require.NoError(t, err)
	assert.Equal(t, "no-block", detail.Gate.Outcome())
	assert.NotEmpty(t, detail.Course.Videos)
	assert.Equal(t, "Interpretar trazados", detail.Course.QueAprendera)
}

func TestGetDetailUnknownCourse(t *testing.T) {
	f := newCourseFixture(t)
	_, err := f.svc.GetDetail(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestGetContentFollowsGate(t *testing.T) {
	f := newCourseFixture(t)

	// Anonymous viewers are sent to login.
	_, gate, err := f.svc.GetContent(context.Background(), f.courseID, nil)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	assert.Equal(t, GateLogin, gate.Kind)

	// Authenticated without a professional profile: profile gate.
	user := &model.User{ProfileCompleted: false}
	_, gate, err = f.svc.GetContent(context.Background(), f.courseID, user)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
	assert.Equal(t, GateProfile, gate.Kind)

	// Completed profile gets the program.
	user.ProfileCompleted = true
	content, gate, err := f.svc.GetContent(context.Background(), f.courseID, user)
	require.NoError(t, err)
	assert.Equal(t, "no-block", gate.Outcome())
	require.Len(t, content.Videos, 1)
	assert.Equal(t, "Derivaciones", content.Videos[0].Titulo)
}

func TestGetContentUnknownCourse(t *testing.T) {
	f := newCourseFixture(t)
	_, _, err := f.svc.GetContent(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestListPublishedFiltersByStatusAndVisibility(t *testing.T) {
	f := newCourseFixture(t)

	hidden := &model.Course{
		Titulo: "Borrador", Status: model.CourseInReview,
		Visibilidad: model.VisibilityPublico, SellerID: "seller-1",
	}
	private := &model.Course{
		Titulo: "Privado", Status: model.CoursePublished,
		Visibilidad: model.VisibilityPrivado, SellerID: "seller-1",
	}
	require.NoError(t, f.courses.CreateWithChildren(hidden))
	require.NoError(t, f.courses.CreateWithChildren(private))

	list, err := f.svc.ListPublished(1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), list.Total)
	assert.Equal(t, "ECG básico", list.Courses[0].Titulo)
}

func TestReviewPipeline(t *testing.T) {
	f := newCourseFixture(t)

	submitted := &model.Course{
		Titulo: "Pendiente", Status: model.CourseInReview,
		Visibilidad: model.VisibilityPublico, SellerID: "seller-1",
	}
	require.NoError(t, f.courses.CreateWithChildren(submitted))

	queue, err := f.svc.ListInReview()
	require.NoError(t, err)
	require.Len(t, queue, 1)

	course, err := f.svc.Review(context.Background(), submitted.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.CoursePublished, course.Status)

	// A resolved course cannot be reviewed twice.
	_, err = f.svc.Review(context.Background(), submitted.ID, false)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestToggleFavorite(t *testing.T) {
	f := newCourseFixture(t)

	on, err := f.svc.ToggleFavorite("user-1", f.courseID)
	require.NoError(t, err)
	assert.True(t, on)

	favs, err := f.svc.ListFavorites("user-1")
	require.NoError(t, err)
	require.Len(t, favs, 1)

	off, err := f.svc.ToggleFavorite("user-1", f.courseID)
	require.NoError(t, err)
	assert.False(t, off)

	favs, err = f.svc.ListFavorites("user-1")
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestOrderEnrollAndConfirm(t *testing.T) {
	f := newCourseFixture(t)
	orders := NewOrderService(f.orders, f.courses)

	order, err := orders.Enroll("user-1", f.courseID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPending, order.Status)
	assert.Equal(t, "49.90", order.Amount)

	// Re-enrolling returns the same pending order.
	again, err := orders.Enroll("user-1", f.courseID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, again.ID)

	confirmed, err := orders.Confirm("user-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPaid, confirmed.Status)

	// A paid course cannot be bought twice.
	_, err = orders.Enroll("user-1", f.courseID)
	assert.ErrorIs(t, err, util.ErrAlreadyPurchased)

	// Someone else cannot confirm the order.
	_, err = orders.Confirm("user-2", order.ID)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}
