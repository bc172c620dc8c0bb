package service

import (
	"errors"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"

	"gorm.io/gorm"
)

// UserService 管理端的用户管理
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// ListUsers 仅列出非管理员用户
func (s *UserService) ListUsers(search string) ([]model.User, error) {
	return s.UserRepo.ListNonAdmins(search)
}

// DeleteUser 管理员账号不可删除；删除连带用户的全部成绩和作答记录
func (s *UserService) DeleteUser(id uint) error {
	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	if user.IsAdmin {
		return util.ErrCannotDeleteAdmin
	}

	return s.UserRepo.Delete(id)
}

func (s *UserService) UpdateAvatar(userID uint, avatarURL string) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return s.UserRepo.UpdateAvatar(userID, avatarURL)
}
