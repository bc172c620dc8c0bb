package repository

import (
	"quiz_platform_backend/internal/model"

	"gorm.io/gorm"
)

type ChapterRepository struct {
	DB *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) Create(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *ChapterRepository) FindByID(id uint) (*model.Chapter, error) {
	var chapter model.Chapter
	err := r.DB.First(&chapter, id).Error
	return &chapter, err
}

func (r *ChapterRepository) Update(chapter *model.Chapter) error {
	return r.DB.Save(chapter).Error
}

// ChapterRow 章节列表行，附带所属科目名
type ChapterRow struct {
	model.Chapter
	SubjectName string `json:"subjectName"`
}

func (r *ChapterRepository) List(search string, subjectID uint) ([]ChapterRow, error) {
	var rows []ChapterRow
	query := r.DB.Table("chapters c").
		Select("c.*, s.name as subject_name").
		Joins("JOIN subjects s ON c.subject_id = s.id").
		Where("c.deleted_at IS NULL")

	if search != "" {
		query = query.Where("c.name LIKE ?", "%"+search+"%")
	}
	if subjectID != 0 {
		query = query.Where("c.subject_id = ?", subjectID)
	}

	err := query.Scan(&rows).Error
	return rows, err
}

// Delete 级联物理删除章节下的测验、题目、成绩及作答记录
func (r *ChapterRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var quizIDs []uint
		if err := tx.Model(&model.Quiz{}).Where("chapter_id = ?", id).Pluck("id", &quizIDs).Error; err != nil {
			return err
		}
		if len(quizIDs) > 0 {
			if err := deleteQuizChildren(tx, quizIDs); err != nil {
				return err
			}
			if err := tx.Unscoped().Where("id IN ?", quizIDs).Delete(&model.Quiz{}).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&model.Chapter{}, id).Error
	})
}
