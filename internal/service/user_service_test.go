package service

import (
	"testing"

	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testUserService(t *testing.T) (*UserService, *repository.UserRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.ProfessionalProfile{},
		&model.SellerRequest{},
	))
	users := repository.NewUserRepository(db)
	requests := repository.NewSellerRequestRepository(db)
	return NewUserService(users, requests, nil), users
}

func seedUser(t *testing.T, users *repository.UserRepository, role model.UserRole) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("contraseña-larga"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{
		Email:        string(role) + "@example.com",
		PasswordHash: string(hash),
		FullName:     "Usuario",
		Role:         role,
		IsActive:     true,
	}
	require.NoError(t, users.Create(u))
	return u
}

func TestUpdateName(t *testing.T) {
	svc, users := testUserService(t)
	u := seedUser(t, users, model.Buyer)

	updated, err := svc.UpdateName(u.ID, "Ana Ruiz Vidal")
	require.NoError(t, err)
	assert.Equal(t, "Ana Ruiz Vidal", updated.FullName)
}

func TestChangePasswordRequiresCurrent(t *testing.T) {
	svc, users := testUserService(t)
	u := seedUser(t, users, model.Buyer)

	err := svc.ChangePassword(u.ID, "incorrecta", "nueva-contraseña")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(u.ID, "contraseña-larga", "nueva-contraseña"))

	refreshed, err := users.FindByID(u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(refreshed.PasswordHash), []byte("nueva-contraseña")))
}

func TestSellerRequestFlow(t *testing.T) {
	svc, users := testUserService(t)
	buyer := seedUser(t, users, model.Buyer)
	admin := seedUser(t, users, model.Admin)

	req, err := svc.RequestSeller(buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SellerRequestPending, req.Status)

	// One pending request at a time.
	_, err = svc.RequestSeller(buyer.ID)
	assert.ErrorIs(t, err, util.ErrSellerRequestExists)

	pending, err := svc.ListPendingSellerRequests()
	require.NoError(t, err)
	require.Len(t, pending, 1)

	resolved, err := svc.ResolveSellerRequest(req.ID, admin.ID, true)
	require.NoError(t, err)
	assert.Equal(t, model.SellerRequestApproved, resolved.Status)
	assert.Equal(t, admin.ID, resolved.ReviewedBy)
	require.NotNil(t, resolved.ReviewedAt)

	// Approval promotes the buyer.
	promoted, err := users.FindByID(buyer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Seller, promoted.Role)

	// Already resolved.
	_, err = svc.ResolveSellerRequest(req.ID, admin.ID, false)
	assert.ErrorIs(t, err, util.ErrSellerRequestNotFound)
}

func TestSellerRequestOnlyForBuyers(t *testing.T) {
	svc, users := testUserService(t)
	sellerUser := seedUser(t, users, model.Seller)

	_, err := svc.RequestSeller(sellerUser.ID)
	assert.ErrorIs(t, err, util.ErrSellerRequestExists)
}
