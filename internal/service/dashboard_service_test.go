package service

import (
	"quiz_platform_backend/internal/repository"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewSubjectRepository(db),
		repository.NewQuizRepository(db),
		repository.NewScoreRepository(db),
	)
}

func TestAdminDashboardCounts(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db)

	createTestUser(t, db, "admin", true)
	createTestUser(t, db, "student", false)
	createTestQuiz(t, db, "Only")

	dashboard, err := svc.GetAdminDashboard()
	if err != nil {
		t.Fatalf("GetAdminDashboard: %v", err)
	}
	if dashboard.UserCount != 1 {
		t.Errorf("UserCount = %d, want 1 (admins excluded)", dashboard.UserCount)
	}
	if dashboard.SubjectCount != 1 || dashboard.QuizCount != 1 {
		t.Errorf("SubjectCount = %d, QuizCount = %d, want 1/1", dashboard.SubjectCount, dashboard.QuizCount)
	}
	if len(dashboard.RecentQuizzes) != 1 {
		t.Errorf("RecentQuizzes = %d, want 1", len(dashboard.RecentQuizzes))
	}
}

func TestUserDashboard(t *testing.T) {
	db := newTestDB(t)
	svc := newDashboardService(db)
	attempt := newAttemptService(db)

	user := createTestUser(t, db, "student", false)

	past := createTestQuiz(t, db, "Past")
	if err := db.Model(past).Update("date", time.Now().AddDate(0, 0, -7)).Error; err != nil {
		t.Fatalf("backdate quiz: %v", err)
	}
	upcoming := createTestQuiz(t, db, "Upcoming")
	if err := db.Model(upcoming).Update("date", time.Now().AddDate(0, 0, 7)).Error; err != nil {
		t.Fatalf("postdate quiz: %v", err)
	}

	q := createTestQuestion(t, db, past.ID, "Q", []string{"a", "b", "c", "d"}, 0)
	if _, err := attempt.Submit(past.ID, user.ID, map[uint]string{q.ID: "0"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	dashboard, err := svc.GetUserDashboard(user.ID)
	if err != nil {
		t.Fatalf("GetUserDashboard: %v", err)
	}
	if dashboard.TotalQuizzesTaken != 1 {
		t.Errorf("TotalQuizzesTaken = %d, want 1", dashboard.TotalQuizzesTaken)
	}
	if dashboard.AverageScore != 100 {
		t.Errorf("AverageScore = %v, want 100", dashboard.AverageScore)
	}
	if len(dashboard.RecentScores) != 1 {
		t.Errorf("RecentScores = %d, want 1", len(dashboard.RecentScores))
	}
	if len(dashboard.UpcomingQuizzes) != 1 {
		t.Fatalf("UpcomingQuizzes = %d, want 1", len(dashboard.UpcomingQuizzes))
	}
	if dashboard.UpcomingQuizzes[0].ID != upcoming.ID {
		t.Errorf("upcoming quiz id = %d, want %d", dashboard.UpcomingQuizzes[0].ID, upcoming.ID)
	}
}
