package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"healthlearn_backend/internal/config"
	"healthlearn_backend/internal/repository"
	"healthlearn_backend/internal/util"
	"healthlearn_backend/pkg/logger"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// PasswordResetService runs the OTP reset flow: a short-lived code in Redis,
// mailed to the user, verified twice (once for the UI's code screen, once on
// the final password change).
type PasswordResetService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client
	Mailer   Mailer
	Cfg      *config.Config
}

func NewPasswordResetService(userRepo *repository.UserRepository, rdb *redis.Client, mailer Mailer, cfg *config.Config) *PasswordResetService {
	return &PasswordResetService{
		UserRepo: userRepo,
		Redis:    rdb,
		Mailer:   mailer,
		Cfg:      cfg,
	}
}

func otpKey(email string) string {
	return "pwdreset:otp:" + email
}

// RequestReset generates and mails an OTP. Unknown emails are acknowledged
// the same as known ones so the endpoint cannot be used to enumerate
// accounts.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	if _, err := s.UserRepo.FindByEmail(email); err != nil {
		logger.Log.Info("password reset requested for unknown email", zap.String("email", email))
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}

	ttl := time.Duration(s.Cfg.Auth.OTPTTLMinutes) * time.Minute
	if err := s.Redis.Set(ctx, otpKey(email), code, ttl).Err(); err != nil {
		return err
	}

	if err := s.Mailer.SendOTP(email, code, s.Cfg.Auth.OTPTTLMinutes); err != nil {
		// The code stays valid; the user can retry the request.
		logger.Log.Error("failed to send OTP mail", zap.Error(err), zap.String("email", email))
		return err
	}
	return nil
}

// VerifyOTP checks the code without consuming it; the final reset call
// consumes it.
func (s *PasswordResetService) VerifyOTP(ctx context.Context, email, code string) error {
	stored, err := s.Redis.Get(ctx, otpKey(email)).Result()
	if err != nil || stored != code {
		return util.ErrInvalidOTP
	}
	return nil
}

// ResetPassword verifies the code one last time, stores the new password
// hash and deletes the code.
func (s *PasswordResetService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.VerifyOTP(ctx, email, code); err != nil {
		return err
	}

	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return util.ErrInvalidOTP
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(user.ID, string(hash)); err != nil {
		return err
	}

	s.Redis.Del(ctx, otpKey(email))
	return nil
}

// generateOTP returns a 6-digit zero-padded code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
