package service

import (
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"time"
)

// DashboardService 管理端与学生端首页数据
type DashboardService struct {
	UserRepo    *repository.UserRepository
	SubjectRepo *repository.SubjectRepository
	QuizRepo    *repository.QuizRepository
	ScoreRepo   *repository.ScoreRepository
}

func NewDashboardService(
	userRepo *repository.UserRepository,
	subjectRepo *repository.SubjectRepository,
	quizRepo *repository.QuizRepository,
	scoreRepo *repository.ScoreRepository,
) *DashboardService {
	return &DashboardService{
		UserRepo:    userRepo,
		SubjectRepo: subjectRepo,
		QuizRepo:    quizRepo,
		ScoreRepo:   scoreRepo,
	}
}

type AdminDashboard struct {
	UserCount     int64        `json:"userCount"`
	SubjectCount  int64        `json:"subjectCount"`
	QuizCount     int64        `json:"quizCount"`
	RecentQuizzes []model.Quiz `json:"recentQuizzes"`
}

func (s *DashboardService) GetAdminDashboard() (*AdminDashboard, error) {
	userCount, err := s.UserRepo.CountNonAdmins()
	if err != nil {
		return nil, err
	}
	subjectCount, err := s.SubjectRepo.Count()
	if err != nil {
		return nil, err
	}
	quizCount, err := s.QuizRepo.Count()
	if err != nil {
		return nil, err
	}
	recent, err := s.QuizRepo.FindRecent(5)
	if err != nil {
		return nil, err
	}

	return &AdminDashboard{
		UserCount:     userCount,
		SubjectCount:  subjectCount,
		QuizCount:     quizCount,
		RecentQuizzes: recent,
	}, nil
}

type UserDashboard struct {
	RecentScores      []model.Score   `json:"recentScores"`
	AverageScore      float64         `json:"averageScore"`
	Subjects          []model.Subject `json:"subjects"`
	UpcomingQuizzes   []model.Quiz    `json:"upcomingQuizzes"`
	TotalQuizzesTaken int64           `json:"totalQuizzesTaken"`
}

func (s *DashboardService) GetUserDashboard(userID uint) (*UserDashboard, error) {
	recentScores, err := s.ScoreRepo.FindRecentByUser(userID, 5)
	if err != nil {
		return nil, err
	}
	avgScore, err := s.ScoreRepo.AverageByUser(userID)
	if err != nil {
		return nil, err
	}
	subjects, err := s.SubjectRepo.List("")
	if err != nil {
		return nil, err
	}

	today := time.Now().Truncate(24 * time.Hour)
	upcoming, err := s.QuizRepo.FindUpcoming(today, 5)
	if err != nil {
		return nil, err
	}

	taken, err := s.ScoreRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	return &UserDashboard{
		RecentScores:      recentScores,
		AverageScore:      avgScore,
		Subjects:          subjects,
		UpcomingQuizzes:   upcoming,
		TotalQuizzesTaken: taken,
	}, nil
}
