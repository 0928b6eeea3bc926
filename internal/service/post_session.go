package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"

	"treehole/internal/model"
	"treehole/internal/pkg/prefs"
	"treehole/internal/pkg/sanitize"
	"treehole/internal/pkg/state"
	"treehole/internal/repository"
)

var (
	ErrEmptyContent   = errors.New("内容不能为空")
	ErrContentTooLong = errors.New("内容不能超过500字")
)

// FeedOptions 帖子流的拉取与刷新参数
type FeedOptions struct {
	PageSize        int64         // 默认拉取条数
	RefreshInterval time.Duration // Run 的定时刷新间隔
	EmptyRetries    int           // 空列表重试次数
	RetryDelay      time.Duration // 重试间隔
}

// DefaultFeedOptions 与原系统一致：20条一页，30秒刷新，空列表重试3次、间隔1秒
func DefaultFeedOptions() FeedOptions {
	return FeedOptions{
		PageSize:        20,
		RefreshInterval: 30 * time.Second,
		EmptyRetries:    3,
		RetryDelay:      time.Second,
	}
}

// PostSession 帖子会话状态持有者
// 持有帖子流相关的可观察状态并编排仓库调用。
// 各字段只由本会话发起的调用链写入；并发链之间不互斥，
// 删除与重载竞争时被删帖子可能短暂回流，下次重载修正。
type PostSession struct {
	repo    repository.PostRepository
	index   prefs.Store
	session Session
	opts    FeedOptions

	Posts          *state.Value[[]*model.Post] // 主帖子流
	UserPosts      *state.Value[[]*model.Post] // 当前用户的帖子
	AnonymousPosts *state.Value[[]*model.Post] // 本设备的匿名帖子
	SearchQuery    *state.Value[string]
	Loading        *state.Value[bool]
	LastErr        *state.Value[error] // 读路径降级为空列表时，错误记在这里
}

// NewPostSession 创建帖子会话
func NewPostSession(repo repository.PostRepository, index prefs.Store, session Session, opts FeedOptions) *PostSession {
	return &PostSession{
		repo:           repo,
		index:          index,
		session:        session,
		opts:           opts,
		Posts:          state.NewValue[[]*model.Post](nil),
		UserPosts:      state.NewValue[[]*model.Post](nil),
		AnonymousPosts: state.NewValue[[]*model.Post](nil),
		SearchQuery:    state.NewValue(""),
		Loading:        state.NewValue(false),
		LastErr:        state.NewValue[error](nil),
	}
}

// LoadPosts 重载主帖子流（整体替换，不做增量合并）
// 拉取失败降级为空列表，错误通过 LastErr 暴露
func (s *PostSession) LoadPosts(ctx context.Context) {
	s.Loading.Set(true)
	defer s.Loading.Set(false)

	posts, err := s.repo.List(ctx, s.opts.PageSize)
	if err != nil {
		log.Error().Err(err).Msg("failed to load posts")
		s.LastErr.Set(err)
		s.Posts.Set(nil)
		return
	}
	s.LastErr.Set(nil)
	s.Posts.Set(posts)
}

// SearchPosts 按关键词搜索并替换主帖子流
// 空关键词等价于无上限的全量列表
func (s *PostSession) SearchPosts(ctx context.Context, query string) {
	s.Loading.Set(true)
	defer s.Loading.Set(false)
	s.SearchQuery.Set(query)

	posts, err := s.repo.Search(ctx, query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("failed to search posts")
		s.LastErr.Set(err)
		s.Posts.Set(nil)
		return
	}
	s.LastErr.Set(nil)
	s.Posts.Set(posts)
}

// LoadUserPosts 加载当前用户的帖子（服务端按作者过滤）
func (s *PostSession) LoadUserPosts(ctx context.Context) {
	if s.session.UserID == "" {
		log.Error().Msg("cannot load user posts: empty user id")
		return
	}

	s.Loading.Set(true)
	defer s.Loading.Set(false)

	posts, err := s.repo.ListByAuthor(ctx, s.session.UserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to load user posts")
		s.LastErr.Set(err)
		s.UserPosts.Set(nil)
		return
	}
	s.LastErr.Set(nil)
	s.UserPosts.Set(posts)
}

// CreatePost 发帖
// 校验在任何远程调用之前完成；匿名帖子的ID记入设备本地索引
func (s *PostSession) CreatePost(ctx context.Context, content, authorName string, tags []string) (string, error) {
	content = sanitize.Content(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > model.MaxPostContentLength {
		return "", ErrContentTooLong
	}

	authorID := s.session.AuthorID()
	if authorID == "" {
		authorName = model.AnonymousAuthorName
	}

	post := &model.Post{
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
		Tags:       tags,
	}
	postID, err := s.repo.Create(ctx, post)
	if err != nil {
		log.Error().Err(err).Msg("failed to create post")
		return "", err
	}

	if authorID == "" {
		if err := s.index.Remember(ctx, s.session.DeviceID, postID); err != nil {
			// 索引写失败不影响发帖结果，该帖子在本设备上不可归属
			log.Warn().Err(err).Str("post_id", postID).Msg("failed to remember anonymous post")
		}
	}

	s.LoadPosts(ctx)
	return postID, nil
}

// UpdatePost 部分字段更新，成功后整体重载
func (s *PostSession) UpdatePost(ctx context.Context, postID string, updates bson.M) error {
	if err := s.repo.Update(ctx, postID, updates); err != nil {
		log.Error().Err(err).Str("post_id", postID).Msg("failed to update post")
		return err
	}

	s.LoadPosts(ctx)
	if s.session.UserID != "" {
		s.LoadUserPosts(ctx)
	}
	return nil
}

// LikePost 点赞（原子自增）
func (s *PostSession) LikePost(ctx context.Context, postID string) error {
	return s.repo.IncLikes(ctx, postID, 1)
}

// DeletePost 删帖
// 评论不级联删除；删除成功后把ID移出设备本地匿名索引
func (s *PostSession) DeletePost(ctx context.Context, postID string) error {
	if err := s.repo.Delete(ctx, postID); err != nil {
		log.Error().Err(err).Str("post_id", postID).Msg("failed to delete post")
		return err
	}

	if err := s.index.Forget(ctx, s.session.DeviceID, postID); err != nil {
		log.Warn().Err(err).Str("post_id", postID).Msg("failed to prune anonymous post index")
	}

	s.Posts.Update(func(cur []*model.Post) []*model.Post { return dropPost(cur, postID) })
	s.UserPosts.Update(func(cur []*model.Post) []*model.Post { return dropPost(cur, postID) })
	s.AnonymousPosts.Update(func(cur []*model.Post) []*model.Post { return dropPost(cur, postID) })
	return nil
}

// LoadAnonymousPosts 加载本设备发出的匿名帖子
// 无上限拉取帖子流后按设备本地索引过滤
func (s *PostSession) LoadAnonymousPosts(ctx context.Context) {
	s.Loading.Set(true)
	defer s.Loading.Set(false)

	ids, err := s.index.List(ctx, s.session.DeviceID)
	if err != nil {
		log.Error().Err(err).Msg("failed to read anonymous post index")
		s.LastErr.Set(err)
		return
	}
	if len(ids) == 0 {
		s.AnonymousPosts.Set(nil)
		return
	}

	all, err := s.repo.List(ctx, 0)
	if err != nil {
		log.Error().Err(err).Msg("failed to load posts for anonymous filter")
		s.LastErr.Set(err)
		s.AnonymousPosts.Set(nil)
		return
	}

	var mine []*model.Post
	for _, p := range all {
		if _, ok := ids[p.ID]; ok {
			mine = append(mine, p)
		}
	}
	s.LastErr.Set(nil)
	s.AnonymousPosts.Set(mine)
}

// Run 驱动定时行为：周期性重载帖子流；帖子流为空时做有限次重试
// ctx 取消后返回。这是会话中仅有的两个时间驱动行为
func (s *PostSession) Run(ctx context.Context) {
	s.LoadPosts(ctx)
	s.retryIfEmpty(ctx)

	ticker := time.NewTicker(s.opts.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.LoadPosts(ctx)
			s.retryIfEmpty(ctx)
		}
	}
}

// retryIfEmpty 帖子流为空时最多重试 EmptyRetries 次，间隔 RetryDelay
func (s *PostSession) retryIfEmpty(ctx context.Context) {
	for i := 0; i < s.opts.EmptyRetries; i++ {
		if len(s.Posts.Get()) > 0 {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.opts.RetryDelay):
		}
		log.Debug().Int("attempt", i+1).Msg("feed empty, retrying")
		s.LoadPosts(ctx)
	}
}

func dropPost(posts []*model.Post, postID string) []*model.Post {
	out := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID != postID {
			out = append(out, p)
		}
	}
	return out
}
