package profile

import (
	"treehole/internal/pkg/storage"
	"treehole/internal/repository"
)

// Handler 用户资料处理器
type Handler struct {
	users repository.UserRepository
	store storage.Storage
}

// NewHandler 创建用户资料处理器
// store 用于头像上传，可以为nil（头像接口返回不可用）
func NewHandler(users repository.UserRepository, store storage.Storage) *Handler {
	return &Handler{
		users: users,
		store: store,
	}
}
