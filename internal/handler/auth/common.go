package auth

import (
	"time"

	"treehole/internal/model"
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// UserInfo 用户信息（用于响应，所有API共用）
type UserInfo struct {
	ID            string `json:"id"`                   // 用户ID
	Username      string `json:"username"`             // 用户名
	Email         string `json:"email,omitempty"`      // 邮箱
	AvatarURL     string `json:"avatar_url,omitempty"` // 头像URL
	Bio           string `json:"bio,omitempty"`        // 个性签名
	EmailVerified bool   `json:"email_verified"`       // 邮箱是否已验证
	CreatedAt     string `json:"created_at,omitempty"` // 创建时间
}

// TokenData 令牌响应数据
type TokenData struct {
	AccessToken string   `json:"access_token"` // Access Token
	ExpiresIn   int      `json:"expires_in"`   // 过期时间（秒）
	TokenType   string   `json:"token_type"`   // Token类型：Bearer
	User        UserInfo `json:"user"`         // 用户信息
}

// toUserInfo 将User实体转换为UserInfo（所有API共用）
func toUserInfo(user *model.User) UserInfo {
	if user == nil {
		return UserInfo{}
	}
	info := UserInfo{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		AvatarURL:     user.AvatarURL,
		Bio:           user.Bio,
		EmailVerified: user.EmailVerified,
	}
	if !user.CreatedAt.IsZero() {
		info.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}
	return info
}
