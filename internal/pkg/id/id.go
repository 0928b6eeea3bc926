package id

import (
	"github.com/google/uuid"
)

// New 生成新的UUID（string格式）
// 帖子/评论/用户文档的ID在客户端预生成，建档只需一次写入
func New() string {
	return uuid.New().String()
}

// IsValid 验证UUID格式是否有效
func IsValid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
