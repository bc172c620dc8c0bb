package database

import (
	"fmt"
	"log"
	"quiz_platform_backend/internal/config"
	"quiz_platform_backend/internal/model"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, admin *config.AdminConfig) (*gorm.DB, error) {
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
		Logger:         logger.Default.LogMode(logger.Info),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	if err := SeedAdmin(db, admin); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Subject{},
		&model.Chapter{},
		&model.Quiz{},
		&model.Question{},
		&model.Score{},
		&model.UserAnswer{},
	)
}

// SeedAdmin 库中没有管理员时种入配置指定的初始管理员账号
func SeedAdmin(db *gorm.DB, admin *config.AdminConfig) error {
	if admin == nil || admin.Username == "" || admin.Password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	dob := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	user := &model.User{
		Username:      admin.Username,
		PasswordHash:  string(hash),
		FullName:      admin.FullName,
		Qualification: admin.Qualification,
		DOB:           &dob,
		IsAdmin:       true,
	}
	if err := db.Create(user).Error; err != nil {
		return err
	}

	log.Printf("Admin user %q created", admin.Username)
	return nil
}
