package service

import (
	"context"
	"fmt"
	"healthlearn_backend/internal/model"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/util"
	"healthlearn_backend/pkg/logger"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserService covers account management past login: name changes, password
// changes, avatar upload and the buyer-to-seller request flow.
type UserService struct {
	UserRepo          *repository.UserRepository
	SellerRequestRepo *repository.SellerRequestRepository
	Storage           *StorageService
}

func NewUserService(userRepo *repository.UserRepository, sellerRequestRepo *repository.SellerRequestRepository, storage *StorageService) *UserService {
	return &UserService{
		UserRepo:          userRepo,
		SellerRequestRepo: sellerRequestRepo,
		Storage:           storage,
	}
}

func (s *UserService) UpdateName(userID, fullName string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	user.FullName = fullName
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword requires the current password before accepting the new one.
func (s *UserService) ChangePassword(userID, current, next string) error {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return util.ErrUserNotFound
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return util.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(userID, string(hash))
}

// UploadAvatar stores the image and saves its URL on the user.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return "", util.ErrUserNotFound
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	contentType, err := util.ValidateMimeType(src, util.ImageMimeTypes)
	if err != nil {
		return "", err
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("avatars/%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, filename, src, file.Size, contentType)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

// RequestSeller opens a pending promotion request for a buyer. Sellers and
// admins have nothing to request; duplicates are rejected.
func (s *UserService) RequestSeller(userID string) (*model.SellerRequest, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	if user.Role != model.Buyer {
		return nil, util.ErrSellerRequestExists
	}

	if pending, err := s.SellerRequestRepo.HasPending(userID); err != nil {
		return nil, err
	} else if pending {
		return nil, util.ErrSellerRequestExists
	}

	req := &model.SellerRequest{UserID: userID, Status: model.SellerRequestPending}
	if err := s.SellerRequestRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *UserService) ListPendingSellerRequests() ([]model.SellerRequest, error) {
	return s.SellerRequestRepo.ListPending()
}

// ResolveSellerRequest approves or rejects a pending request. Approval
// promotes the user to seller.
func (s *UserService) ResolveSellerRequest(requestID, adminID string, approve bool) (*model.SellerRequest, error) {
	req, err := s.SellerRequestRepo.FindByID(requestID)
	if err != nil {
		return nil, util.ErrSellerRequestNotFound
	}
	if req.Status != model.SellerRequestPending {
		return nil, util.ErrSellerRequestNotFound
	}

	now := time.Now()
	req.ReviewedBy = adminID
	req.ReviewedAt = &now
	if approve {
		req.Status = model.SellerRequestApproved
	} else {
		req.Status = model.SellerRequestRejected
	}

	if err := s.SellerRequestRepo.Resolve(req, approve); err != nil {
		return nil, err
	}

	logger.Log.Info("seller request resolved",
		zap.String("request_id", requestID),
		zap.String("status", string(req.Status)))
	return req, nil
}
