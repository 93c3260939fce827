package repository

import (
	"healthlearn_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.Preload("Profile").First(&user, "id = ?", id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdatePassword(userID, passwordHash string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("password_hash", passwordHash).Error
}

func (r *UserRepository) UpdateLastLogin(userID string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_login", time.Now()).Error
}

// SaveProfile upserts the professional profile and flips the user's
// profile_completed flag in one transaction, so a reader never sees the flag
// set without the profile row.
func (r *UserRepository) SaveProfile(userID string, profile *model.ProfessionalProfile) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.ProfessionalProfile
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			profile.UserID = userID
			if err := tx.Create(profile).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			profile.ID = existing.ID
			profile.UserID = userID
			profile.CreatedAt = existing.CreatedAt
			if err := tx.Save(profile).Error; err != nil {
				return err
			}
		}

		return tx.Model(&model.User{}).Where("id = ?", userID).
			Update("profile_completed", true).Error
	})
}
