package repository

import (
	"quiz_platform_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.First(&subject, id).Error
	return &subject, err
}

func (r *SubjectRepository) Update(subject *model.Subject) error {
	return r.DB.Save(subject).Error
}

func (r *SubjectRepository) List(search string) ([]model.Subject, error) {
	var subjects []model.Subject
	query := r.DB.Model(&model.Subject{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	err := query.Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Subject{}).Count(&count).Error
	return count, err
}

// Delete 自顶向下级联物理删除：章节、测验、题目、成绩及作答记录
func (r *SubjectRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var chapterIDs []uint
		if err := tx.Model(&model.Chapter{}).Where("subject_id = ?", id).Pluck("id", &chapterIDs).Error; err != nil {
			return err
		}

		if len(chapterIDs) > 0 {
			var quizIDs []uint
			if err := tx.Model(&model.Quiz{}).Where("chapter_id IN ?", chapterIDs).Pluck("id", &quizIDs).Error; err != nil {
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
			if err := tx.Unscoped().Where("id IN ?", chapterIDs).Delete(&model.Chapter{}).Error; err != nil {
				return err
			}
		}

		return tx.Unscoped().Delete(&model.Subject{}, id).Error
	})
}

// deleteQuizChildren 物理删除一组测验下属的题目、成绩和作答记录。
// 级联删除统一物理删除，软删除的成绩行会一直占用 (quiz_id, user_id) 唯一索引。
func deleteQuizChildren(tx *gorm.DB, quizIDs []uint) error {
	if err := tx.Unscoped().Where("quiz_id IN ?", quizIDs).Delete(&model.Question{}).Error; err != nil {
		return err
	}
	var scoreIDs []uint
	if err := tx.Model(&model.Score{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &scoreIDs).Error; err != nil {
		return err
	}
	if len(scoreIDs) > 0 {
		if err := tx.Unscoped().Where("score_id IN ?", scoreIDs).Delete(&model.UserAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("quiz_id IN ?", quizIDs).Delete(&model.Score{}).Error; err != nil {
			return err
		}
	}
	return nil
}
