package repository

import (
	"quiz_platform_backend/internal/model"

	"gorm.io/gorm"
)

// AnalyticsRepository 管理端统计的只读聚合查询，每次请求实时计算
type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// QuizParticipationRow 测验参与度：按提交数倒序，零提交的测验也包含在内
type QuizParticipationRow struct {
	QuizID       uint   `json:"quizId"`
	Title        string `json:"title"`
	AttemptCount int64  `json:"attemptCount"`
}

func (r *AnalyticsRepository) QuizParticipation(limit int) ([]QuizParticipationRow, error) {
	var rows []QuizParticipationRow
	err := r.DB.Table("quizzes q").
		Select("q.id as quiz_id, q.title, COUNT(sc.id) as attempt_count").
		Joins("LEFT JOIN scores sc ON sc.quiz_id = q.id AND sc.deleted_at IS NULL").
		Where("q.deleted_at IS NULL").
		Group("q.id, q.title").
		Order("attempt_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// SubjectPopularityRow 各科目的测验提交总数
type SubjectPopularityRow struct {
	SubjectID    uint   `json:"subjectId"`
	Name         string `json:"name"`
	AttemptCount int64  `json:"attemptCount"`
}

func (r *AnalyticsRepository) SubjectPopularity() ([]SubjectPopularityRow, error) {
	var rows []SubjectPopularityRow
	err := r.DB.Table("subjects s").
		Select("s.id as subject_id, s.name, COUNT(sc.id) as attempt_count").
		Joins("JOIN chapters c ON c.subject_id = s.id AND c.deleted_at IS NULL").
		Joins("JOIN quizzes q ON q.chapter_id = c.id AND q.deleted_at IS NULL").
		Joins("LEFT JOIN scores sc ON sc.quiz_id = q.id AND sc.deleted_at IS NULL").
		Where("s.deleted_at IS NULL").
		Group("s.id, s.name").
		Order("attempt_count DESC").
		Scan(&rows).Error
	return rows, err
}

// SubjectAverageRow 各科目全部成绩的平均分
type SubjectAverageRow struct {
	Name     string  `json:"name"`
	AvgScore float64 `json:"avgScore"`
}

func (r *AnalyticsRepository) AverageScoreBySubject() ([]SubjectAverageRow, error) {
	var rows []SubjectAverageRow
	err := r.DB.Table("subjects s").
		Select("s.name, AVG(sc.total_score) as avg_score").
		Joins("JOIN chapters c ON c.subject_id = s.id AND c.deleted_at IS NULL").
		Joins("JOIN quizzes q ON q.chapter_id = c.id AND q.deleted_at IS NULL").
		Joins("JOIN scores sc ON sc.quiz_id = q.id AND sc.deleted_at IS NULL").
		Where("s.deleted_at IS NULL").
		Group("s.name").
		Order("avg_score DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *AnalyticsRepository) Totals() (users, subjects, quizzes int64, err error) {
	if err = r.DB.Model(&model.User{}).Where("is_admin = ?", false).Count(&users).Error; err != nil {
		return
	}
	if err = r.DB.Model(&model.Subject{}).Count(&subjects).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.Quiz{}).Count(&quizzes).Error
	return
}
