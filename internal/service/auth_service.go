package service

import (
	"context"
	"errors"
	"quiz_platform_backend/internal/config"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Redis    *redis.Client

	// 配置经原子指针读写，热更新时请求协程可能并发读取
	cfg atomic.Pointer[config.Config]
}

func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	s := &AuthService{
		UserRepo: userRepo,
		Redis:    rdb,
	}
	s.cfg.Store(cfg)
	return s
}

func (s *AuthService) Config() *config.Config {
	return s.cfg.Load()
}

// SetConfig 配置热更新回调入口，整体替换而非就地修改
func (s *AuthService) SetConfig(cfg *config.Config) {
	s.cfg.Store(cfg)
}

// Register 创建普通用户。用户名已占用返回 ErrUsernameTaken（区分大小写的精确匹配），
// 出生日期晚于今天返回 ErrDOBInFuture。
func (s *AuthService) Register(user *model.User, password string) error {
	_, err := s.UserRepo.FindByUsername(user.Username)
	if err == nil {
		return util.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user.DOB != nil && user.DOB.After(time.Now()) {
		return util.ErrDOBInFuture
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hashedPassword)
	user.IsAdmin = false

	if err := s.UserRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return util.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (s *AuthService) Login(username, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return "", nil, errors.New("invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.New("invalid username or password")
	}

	jwtCfg := s.Config().JWT
	token, err := util.GenerateJWT(user, jwtCfg.Secret, jwtCfg.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout 将令牌加入 Redis 黑名单直到其自然过期
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := util.ParseJWT(tokenString, s.Config().JWT.Secret)
	if err != nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 || s.Redis == nil {
		return nil
	}
	return s.Redis.Set(ctx, revokedTokenKey(tokenString), "1", ttl).Err()
}

// IsTokenRevoked Redis 不可用时放行，令牌校验仍由签名保证
func (s *AuthService) IsTokenRevoked(ctx context.Context, tokenString string) bool {
	if s.Redis == nil {
		return false
	}
	n, err := s.Redis.Exists(ctx, revokedTokenKey(tokenString)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

func revokedTokenKey(token string) string {
	return "auth:revoked:" + token
}

func (s *AuthService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
