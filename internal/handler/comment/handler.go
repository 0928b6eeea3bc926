package comment

import (
	"treehole/internal/repository"
)

// Handler 评论处理器
type Handler struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewHandler 创建评论处理器
// posts 仓库用于维护帖子上的评论数缓存
func NewHandler(comments repository.CommentRepository, posts repository.PostRepository) *Handler {
	return &Handler{
		comments: comments,
		posts:    posts,
	}
}
