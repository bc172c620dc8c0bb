package service

import (
	"fmt"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/util"
	"quiz_platform_backend/pkg/database"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的内存库。限制为单连接，
// 避免连接池里的新连接拿到一个空的内存数据库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, isAdmin bool) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		PasswordHash: "x",
		FullName:     "Test " + username,
		IsAdmin:      isAdmin,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// createTestQuiz 建一个科目/章节/测验的链条，返回测验
func createTestQuiz(t *testing.T, db *gorm.DB, title string) *model.Quiz {
	t.Helper()
	subject := &model.Subject{Name: "Subject for " + title}
	if err := db.Create(subject).Error; err != nil {
		t.Fatalf("create subject: %v", err)
	}
	chapter := &model.Chapter{SubjectID: subject.ID, Name: "Chapter for " + title}
	if err := db.Create(chapter).Error; err != nil {
		t.Fatalf("create chapter: %v", err)
	}
	quiz := &model.Quiz{
		ChapterID: chapter.ID,
		Title:     title,
		Date:      time.Now(),
		Duration:  30,
	}
	if err := db.Create(quiz).Error; err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

func createTestQuestion(t *testing.T, db *gorm.DB, quizID uint, text string, options []string, correct int) *model.Question {
	t.Helper()
	encoded, err := util.EncodeOptions(options)
	if err != nil {
		t.Fatalf("encode options: %v", err)
	}
	question := &model.Question{
		QuizID:        quizID,
		QuestionText:  text,
		Options:       encoded,
		CorrectAnswer: correct,
	}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return question
}
