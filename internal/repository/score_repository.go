package repository

import (
	"quiz_platform_backend/internal/model"

	"gorm.io/gorm"
)

type ScoreRepository struct {
	DB *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{DB: db}
}

func (r *ScoreRepository) FindByID(id uint) (*model.Score, error) {
	var score model.Score
	err := r.DB.First(&score, id).Error
	return &score, err
}

func (r *ScoreRepository) FindByUserAndQuiz(userID, quizID uint) (*model.Score, error) {
	var score model.Score
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *ScoreRepository) FindRecentByUser(userID uint, limit int) ([]model.Score, error) {
	var scores []model.Score
	err := r.DB.Where("user_id = ?", userID).Order("timestamp DESC").Limit(limit).Find(&scores).Error
	return scores, err
}

func (r *ScoreRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Score{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// AverageByUser 用户所有成绩的平均分，无成绩时返回 0
func (r *ScoreRepository) AverageByUser(userID uint) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.Score{}).
		Where("user_id = ?", userID).
		Select("AVG(total_score)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

// CompletedQuizIDs 用户已完成的测验ID列表
func (r *ScoreRepository) CompletedQuizIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Score{}).Where("user_id = ?", userID).Pluck("quiz_id", &ids).Error
	return ids, err
}

// HistoryRow 成绩历史行，附带测验/章节/科目名称
type HistoryRow struct {
	model.Score
	QuizTitle   string `json:"quizTitle"`
	ChapterName string `json:"chapterName"`
	SubjectName string `json:"subjectName"`
}

func (r *ScoreRepository) HistoryByUser(userID uint) ([]HistoryRow, error) {
	var rows []HistoryRow
	err := r.DB.Table("scores sc").
		Select("sc.*, q.title as quiz_title, c.name as chapter_name, s.name as subject_name").
		Joins("JOIN quizzes q ON sc.quiz_id = q.id").
		Joins("JOIN chapters c ON q.chapter_id = c.id").
		Joins("JOIN subjects s ON c.subject_id = s.id").
		Where("sc.user_id = ? AND sc.deleted_at IS NULL", userID).
		Order("sc.timestamp DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *ScoreRepository) ListAnswers(scoreID uint) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.DB.Where("score_id = ?", scoreID).Find(&answers).Error
	return answers, err
}

// CreateWithAnswers 在单个事务中写入成绩和全部作答记录
func (r *ScoreRepository) CreateWithAnswers(score *model.Score, answers []model.UserAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(score).Error; err != nil {
			return err
		}
		for i := range answers {
			answers[i].ScoreID = score.ID
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
