package service

import (
	"errors"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
	"testing"
)

func TestListUsersExcludesAdmins(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	createTestUser(t, db, "admin", true)
	createTestUser(t, db, "student1", false)
	createTestUser(t, db, "student2", false)

	users, err := svc.ListUsers("")
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("users = %d, want 2", len(users))
	}
	for _, u := range users {
		if u.IsAdmin {
			t.Errorf("admin %s leaked into user list", u.Username)
		}
	}
}

func TestListUsersSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	createTestUser(t, db, "alice", false)
	createTestUser(t, db, "bob", false)

	users, err := svc.ListUsers("ali")
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0].Username != "alice" {
		t.Errorf("search result = %+v, want alice only", users)
	}
}

func TestDeleteUserRemovesAttempts(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	attempt := newAttemptService(db)

	user := createTestUser(t, db, "leaving", false)
	quiz := createTestQuiz(t, db, "Kept")
	q1 := createTestQuestion(t, db, quiz.ID, "Q", []string{"a", "b", "c", "d"}, 0)

	score, err := attempt.Submit(quiz.ID, user.ID, map[uint]string{q1.ID: "0"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := svc.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	var scoreCount, answerCount int64
	db.Model(&model.Score{}).Where("user_id = ?", user.ID).Count(&scoreCount)
	db.Model(&model.UserAnswer{}).Where("score_id = ?", score.ID).Count(&answerCount)
	if scoreCount != 0 || answerCount != 0 {
		t.Errorf("scores = %d, answers = %d after user delete, want 0/0", scoreCount, answerCount)
	}

	// 测验本身不受影响
	var quizCount int64
	db.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Count(&quizCount)
	if quizCount != 1 {
		t.Errorf("quiz rows = %d, want 1", quizCount)
	}

	// 重复删除得到不存在
	if err := svc.DeleteUser(user.ID); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("second DeleteUser error = %v, want ErrUserNotFound", err)
	}
}

func TestDeleteUserFreesUsername(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	auth := newAuthService(db)

	first := &model.User{Username: "phoenix", FullName: "First Owner"}
	if err := auth.Register(first, "secret123"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.DeleteUser(first.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	// 删除后该用户名必须可以重新注册
	second := &model.User{Username: "phoenix", FullName: "Second Owner"}
	if err := auth.Register(second, "secret456"); err != nil {
		t.Fatalf("Register after delete: %v", err)
	}

	var rows int64
	db.Model(&model.User{}).Where("username = ?", "phoenix").Count(&rows)
	if rows != 1 {
		t.Fatalf("live phoenix rows = %d, want 1", rows)
	}
}

func TestDeleteUserRefusesAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	admin := createTestUser(t, db, "root", true)
	if err := svc.DeleteUser(admin.ID); !errors.Is(err, util.ErrCannotDeleteAdmin) {
		t.Fatalf("DeleteUser(admin) error = %v, want ErrCannotDeleteAdmin", err)
	}
}

func TestUpdateAvatar(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	user := createTestUser(t, db, "pic", false)
	if err := svc.UpdateAvatar(user.ID, "/uploads/avatars/x.png"); err != nil {
		t.Fatalf("UpdateAvatar: %v", err)
	}

	var stored model.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.Avatar != "/uploads/avatars/x.png" {
		t.Errorf("avatar = %q", stored.Avatar)
	}
}
