package service

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"treehole/internal/model"
	"treehole/internal/pkg/id"
	"treehole/internal/pkg/jwt"
	"treehole/internal/pkg/mail"
	"treehole/internal/pkg/password"
	"treehole/internal/repository"
)

var (
	ErrEmptyCredentials  = errors.New("请输入邮箱和密码")
	ErrPasswordTooShort  = errors.New("密码至少6位")
	ErrPasswordMismatch  = errors.New("两次密码不一致")
	ErrEmailRegistered   = errors.New("邮箱已被注册")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrInvalidPassword   = errors.New("密码错误")
	ErrNotAuthenticated  = errors.New("用户未登录")
	ErrInvalidVerifyCode = errors.New("验证码错误")
)

// AuthService 认证网关
// 对应托管认证后端的职责：注册、登录、邮箱验证、身份查询，
// 以及一次性的匿名身份发放
type AuthService struct {
	identityRepo repository.IdentityRepository
	userRepo     repository.UserRepository
	jwt          *jwt.JWT
	mail         *mail.Sender
}

// NewAuthService 创建认证网关
func NewAuthService(
	identityRepo repository.IdentityRepository,
	userRepo repository.UserRepository,
	jwtSecret string,
	accessTokenExpiry time.Duration,
	sender *mail.Sender,
) *AuthService {
	return &AuthService{
		identityRepo: identityRepo,
		userRepo:     userRepo,
		jwt:          jwt.NewJWT(jwtSecret, accessTokenExpiry),
		mail:         sender,
	}
}

// RegisterWithEmail 邮箱注册，返回新身份的用户ID
// 身份记录和资料文档是两次独立写入，不保证原子性：
// 资料写入失败时身份已经存在，和原系统行为一致
func (s *AuthService) RegisterWithEmail(ctx context.Context, email, pwd, username string) (string, error) {
	if email == "" || pwd == "" {
		return "", ErrEmptyCredentials
	}
	if len(pwd) < 6 {
		return "", ErrPasswordTooShort
	}

	if existing, _ := s.identityRepo.FindByEmail(ctx, email); existing != nil {
		return "", ErrEmailRegistered
	}

	hashed, err := password.Hash(pwd)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")
		return "", errors.New("密码加密失败")
	}

	code := newVerifyCode()
	identity := &model.Identity{
		ID:           id.New(),
		Email:        email,
		PasswordHash: hashed,
		DisplayName:  username,
		VerifyCode:   code,
	}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		log.Error().Err(err).Msg("failed to create identity")
		return "", errors.New("创建用户失败")
	}

	// 第二次写入：建立资料文档
	if username == "" {
		username = model.DefaultUsername(identity.ID)
	}
	user := &model.User{
		ID:        identity.ID,
		Username:  username,
		Email:     email,
		CreatedAt: time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Error().Err(err).Str("user_id", identity.ID).Msg("failed to create profile document")
		return "", errors.New("创建用户资料失败")
	}

	s.mail.SendVerificationCode(email, code)

	return identity.ID, nil
}

// LoginWithEmail 邮箱登录，返回用户ID
func (s *AuthService) LoginWithEmail(ctx context.Context, email, pwd string) (string, error) {
	if email == "" || pwd == "" {
		return "", ErrEmptyCredentials
	}

	identity, err := s.identityRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrUserNotFound
	}
	if !password.Verify(pwd, identity.PasswordHash) {
		return "", ErrInvalidPassword
	}
	return identity.ID, nil
}

// SendEmailVerification 重新发送邮箱验证码
// 没有已登录的非匿名身份时拒绝
func (s *AuthService) SendEmailVerification(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	identity, err := s.identityRepo.FindByID(ctx, userID)
	if err != nil {
		return ErrNotAuthenticated
	}
	if identity.Anonymous || identity.Email == "" {
		return ErrNotAuthenticated
	}

	code := newVerifyCode()
	if err := s.identityRepo.Update(ctx, userID, bson.M{"verify_code": code}); err != nil {
		return err
	}
	s.mail.SendVerificationCode(identity.Email, code)
	return nil
}

// VerifyEmail 校验验证码并标记身份已验证
// 资料文档已存在时同步其 email_verified 字段
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	identity, err := s.identityRepo.FindByEmail(ctx, email)
	if err != nil {
		return ErrUserNotFound
	}
	if identity.EmailVerified {
		return nil
	}
	if identity.VerifyCode == "" || identity.VerifyCode != code {
		return ErrInvalidVerifyCode
	}

	if err := s.identityRepo.Update(ctx, identity.ID, bson.M{
		"email_verified": true,
		"verify_code":    "",
	}); err != nil {
		return err
	}

	if exists, _ := s.userRepo.Exists(ctx, identity.ID); exists {
		if err := s.userRepo.Update(ctx, identity.ID, bson.M{"email_verified": true}); err != nil {
			log.Warn().Err(err).Str("user_id", identity.ID).Msg("failed to sync profile verification flag")
		}
	}
	return nil
}

// CurrentUser 根据身份记录合成当前用户视图，身份不存在时返回 nil
func (s *AuthService) CurrentUser(ctx context.Context, userID string) *model.User {
	if userID == "" {
		return nil
	}
	identity, err := s.identityRepo.FindByID(ctx, userID)
	if err != nil {
		return nil
	}
	return identity.ToUser()
}

// EnsureAnonymous 发放匿名身份
// 每台设备首次启动调用一次，之后持有返回的Token即可归属匿名帖子
func (s *AuthService) EnsureAnonymous(ctx context.Context) (*model.Identity, error) {
	identity := &model.Identity{
		ID:        id.New(),
		Anonymous: true,
	}
	if err := s.identityRepo.Create(ctx, identity); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", identity.ID).Msg("anonymous identity provisioned")
	return identity, nil
}

// GenerateToken 为身份签发Access Token
func (s *AuthService) GenerateToken(userID string, anonymous bool) (string, int, error) {
	token, err := s.jwt.GenerateToken(userID, anonymous)
	if err != nil {
		return "", 0, err
	}
	return token, int(s.jwt.GetExpiration().Seconds()), nil
}

// JWT 暴露JWT工具给认证中间件
func (s *AuthService) JWT() *jwt.JWT {
	return s.jwt
}

// newVerifyCode 生成6位数字验证码（每位均匀分布）
func newVerifyCode() string {
	buf := make([]byte, 6)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			panic(err)
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf)
}
