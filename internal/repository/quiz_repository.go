package repository

import (
	"quiz_platform_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Count(&count).Error
	return count, err
}

func (r *QuizRepository) FindRecent(limit int) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Order("date DESC").Limit(limit).Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) FindUpcoming(from time.Time, limit int) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Where("date >= ?", from).Order("date ASC").Limit(limit).Find(&quizzes).Error
	return quizzes, err
}

// QuizRow 测验列表行，附带章节名和科目名
type QuizRow struct {
	model.Quiz
	ChapterName string `json:"chapterName"`
	SubjectName string `json:"subjectName"`
}

// List 管理端/学生端共用的联查列表，支持搜索和按章节/科目过滤
func (r *QuizRepository) List(search string, chapterID, subjectID uint) ([]QuizRow, error) {
	var rows []QuizRow
	query := r.DB.Table("quizzes q").
		Select("q.*, c.name as chapter_name, s.name as subject_name").
		Joins("JOIN chapters c ON q.chapter_id = c.id").
		Joins("JOIN subjects s ON c.subject_id = s.id").
		Where("q.deleted_at IS NULL")

	if search != "" {
		term := "%" + search + "%"
		query = query.Where("q.title LIKE ? OR c.name LIKE ? OR s.name LIKE ?", term, term, term)
	}
	if chapterID != 0 {
		query = query.Where("q.chapter_id = ?", chapterID)
	}
	if subjectID != 0 {
		query = query.Where("c.subject_id = ?", subjectID)
	}

	err := query.Order("q.date DESC").Scan(&rows).Error
	return rows, err
}

// Delete 级联物理删除测验下的题目、成绩及作答记录
func (r *QuizRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := deleteQuizChildren(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&model.Quiz{}, id).Error
	})
}
