package post

import (
	"context"

	"treehole/internal/pkg/prefs"
	"treehole/internal/repository"
	"treehole/internal/service"
)

// Handler 帖子处理器
type Handler struct {
	posts    repository.PostRepository
	index    prefs.Store
	feed     *service.PostSession
	pageSize int64
}

// NewHandler 创建帖子处理器
// feed 为共享的帖子流会话，写操作完成后触发重载，推送给WebSocket订阅端；可以为nil
// pageSize 是列表接口未显式传limit时的条数，传0退回默认页大小
func NewHandler(posts repository.PostRepository, index prefs.Store, feed *service.PostSession, pageSize int64) *Handler {
	if pageSize <= 0 {
		pageSize = service.DefaultFeedOptions().PageSize
	}
	return &Handler{
		posts:    posts,
		index:    index,
		feed:     feed,
		pageSize: pageSize,
	}
}

// refreshFeed 异步重载共享帖子流
// 不挂在请求context上，请求结束不应打断重载
func (h *Handler) refreshFeed() {
	if h.feed == nil {
		return
	}
	go h.feed.LoadPosts(context.Background())
}
