package repository

import (
	"quiz_platform_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

// FindByUsername 用户名为精确匹配（区分大小写）
func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) UpdateAvatar(userID uint, avatarURL string) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("avatar", avatarURL).
		Error
}

// ListNonAdmins 列出非管理员用户，支持按用户名/姓名模糊搜索
func (r *UserRepository) ListNonAdmins(search string) ([]model.User, error) {
	var users []model.User
	query := r.DB.Where("is_admin = ?", false)
	if search != "" {
		term := "%" + search + "%"
		query = query.Where("username LIKE ? OR full_name LIKE ?", term, term)
	}
	err := query.Find(&users).Error
	return users, err
}

func (r *UserRepository) CountNonAdmins() (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("is_admin = ?", false).Count(&count).Error
	return count, err
}

// Delete 物理删除用户并连带删除其所有成绩和作答记录。
// 必须物理删除，软删除的行仍占用 username 唯一索引，会导致该用户名无法重新注册。
func (r *UserRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var scoreIDs []uint
		if err := tx.Model(&model.Score{}).Where("user_id = ?", id).Pluck("id", &scoreIDs).Error; err != nil {
			return err
		}
		if len(scoreIDs) > 0 {
			if err := tx.Unscoped().Where("score_id IN ?", scoreIDs).Delete(&model.UserAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Unscoped().Where("user_id = ?", id).Delete(&model.Score{}).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&model.User{}, id).Error
	})
}
