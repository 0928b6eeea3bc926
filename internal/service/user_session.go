package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"treehole/internal/model"
	"treehole/internal/pkg/state"
	"treehole/internal/repository"
)

// UserSession 用户会话状态持有者
// 聚合认证状态与个人资料；登出只清本地状态，不等待远端
type UserSession struct {
	auth  *AuthService
	users repository.UserRepository

	CurrentUser *state.Value[*model.User]
	Profile     *state.Value[*model.User]
	IsLoggedIn  *state.Value[bool]
	Loading     *state.Value[bool]
	LastErr     *state.Value[error]
}

// NewUserSession 创建用户会话
func NewUserSession(auth *AuthService, users repository.UserRepository) *UserSession {
	return &UserSession{
		auth:        auth,
		users:       users,
		CurrentUser: state.NewValue[*model.User](nil),
		Profile:     state.NewValue[*model.User](nil),
		IsLoggedIn:  state.NewValue(false),
		Loading:     state.NewValue(false),
		LastErr:     state.NewValue[error](nil),
	}
}

// Register 邮箱注册，成功后即视为已登录
func (s *UserSession) Register(ctx context.Context, email, pwd, username string) (string, error) {
	s.Loading.Set(true)
	defer s.Loading.Set(false)

	userID, err := s.auth.RegisterWithEmail(ctx, email, pwd, username)
	if err != nil {
		s.LastErr.Set(err)
		return "", err
	}
	s.afterLogin(ctx, userID)
	return userID, nil
}

// Login 邮箱登录
func (s *UserSession) Login(ctx context.Context, email, pwd string) (string, error) {
	s.Loading.Set(true)
	defer s.Loading.Set(false)

	userID, err := s.auth.LoginWithEmail(ctx, email, pwd)
	if err != nil {
		s.LastErr.Set(err)
		return "", err
	}
	s.afterLogin(ctx, userID)
	return userID, nil
}

func (s *UserSession) afterLogin(ctx context.Context, userID string) {
	s.LastErr.Set(nil)
	s.IsLoggedIn.Set(true)
	s.CurrentUser.Set(s.auth.CurrentUser(ctx, userID))
}

// Logout 登出，立即清空本地状态
func (s *UserSession) Logout() {
	s.IsLoggedIn.Set(false)
	s.CurrentUser.Set(nil)
	s.Profile.Set(nil)
	s.LastErr.Set(nil)
}

// LoadProfile 加载用户资料；资料缺失时得到确定性默认资料
func (s *UserSession) LoadProfile(ctx context.Context, userID string) {
	s.Loading.Set(true)
	defer s.Loading.Set(false)

	user, err := s.users.Get(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load profile")
		s.LastErr.Set(err)
		return
	}
	s.LastErr.Set(nil)
	s.Profile.Set(user)
}

// UpdateProfile 更新用户资料字段，成功后重载
func (s *UserSession) UpdateProfile(ctx context.Context, userID string, updates bson.M) error {
	if err := s.users.Update(ctx, userID, updates); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to update profile")
		s.LastErr.Set(err)
		return err
	}
	s.LoadProfile(ctx, userID)
	return nil
}
