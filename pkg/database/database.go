package database

import (
	"fmt"
	"healthlearn_backend/internal/config"
	"healthlearn_backend/internal/model"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedAdmin(db)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ProfessionalProfile{},
		&model.Course{},
		&model.CourseSection{},
		&model.CourseVideo{},
		&model.CourseBibliography{},
		&model.Order{},
		&model.Favorite{},
		&model.CourseRating{},
		&model.SellerRequest{},
	)
}

// seedAdmin creates the bootstrap admin account on an empty install. The
// password must be changed after first login.
func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Where("role = ?", model.Admin).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	if err != nil {
		return
	}

	admin := &model.User{
		Email:        "admin@healthlearn.local",
		PasswordHash: string(hash),
		FullName:     "Administrador",
		Role:         model.Admin,
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("failed to seed admin user: %v", err)
	}
}
