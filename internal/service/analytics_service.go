package service

import (
	"quiz_platform_backend/internal/repository"
)

// AnalyticsService 管理端统计视图，全部为只读聚合，每次请求重新计算
type AnalyticsService struct {
	AnalyticsRepo *repository.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{AnalyticsRepo: analyticsRepo}
}

type AnalyticsOverview struct {
	TotalUsers         int64                             `json:"totalUsers"`
	TotalSubjects      int64                             `json:"totalSubjects"`
	TotalQuizzes       int64                             `json:"totalQuizzes"`
	QuizParticipation  []repository.QuizParticipationRow `json:"quizParticipation"`
	SubjectPopularity  []repository.SubjectPopularityRow `json:"subjectPopularity"`
	AvgScoresBySubject []repository.SubjectAverageRow    `json:"avgScoresBySubject"`
}

func (s *AnalyticsService) GetOverview() (*AnalyticsOverview, error) {
	users, subjects, quizzes, err := s.AnalyticsRepo.Totals()
	if err != nil {
		return nil, err
	}

	participation, err := s.AnalyticsRepo.QuizParticipation(10)
	if err != nil {
		return nil, err
	}

	popularity, err := s.AnalyticsRepo.SubjectPopularity()
	if err != nil {
		return nil, err
	}

	averages, err := s.AnalyticsRepo.AverageScoreBySubject()
	if err != nil {
		return nil, err
	}

	return &AnalyticsOverview{
		TotalUsers:         users,
		TotalSubjects:      subjects,
		TotalQuizzes:       quizzes,
		QuizParticipation:  participation,
		SubjectPopularity:  popularity,
		AvgScoresBySubject: averages,
	}, nil
}
