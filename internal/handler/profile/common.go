package profile

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

// ProfileInfo 用户资料（用于响应）
type ProfileInfo struct {
	ID            string `json:"id"`                   // 用户ID
	Username      string `json:"username"`             // 用户名
	Email         string `json:"email,omitempty"`      // 邮箱
	AvatarURL     string `json:"avatar_url,omitempty"` // 头像URL
	Bio           string `json:"bio,omitempty"`        // 个性签名
	EmailVerified bool   `json:"email_verified"`       // 邮箱是否已验证
	CreatedAt     string `json:"created_at,omitempty"` // 创建时间
}

func toProfileInfo(u *model.User) ProfileInfo {
	info := ProfileInfo{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		AvatarURL:     u.AvatarURL,
		Bio:           u.Bio,
		EmailVerified: u.EmailVerified,
	}
	if !u.CreatedAt.IsZero() {
		info.CreatedAt = u.CreatedAt.Format(time.RFC3339)
	}
	return info
}
