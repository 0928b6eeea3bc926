package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"treehole/internal/model"
	"treehole/internal/pkg/sanitize"
	"treehole/internal/pkg/state"
	"treehole/internal/repository"
)

var ErrEmptyComment = errors.New("评论内容不能为空")

// CommentSession 评论会话状态持有者
// 评论增删时用原子自增维护帖子上的评论数缓存；
// 缓存与评论集合之间没有事务，计数只作展示用途
type CommentSession struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	session  Session

	Comments *state.Value[[]*model.Comment]
	Loading  *state.Value[bool]
	LastErr  *state.Value[error]
}

// NewCommentSession 创建评论会话
func NewCommentSession(comments repository.CommentRepository, posts repository.PostRepository, session Session) *CommentSession {
	return &CommentSession{
		comments: comments,
		posts:    posts,
		session:  session,
		Comments: state.NewValue[[]*model.Comment](nil),
		Loading:  state.NewValue(false),
		LastErr:  state.NewValue[error](nil),
	}
}

// LoadComments 加载帖子下的评论（正序，整体替换）
func (s *CommentSession) LoadComments(ctx context.Context, postID string) {
	s.Loading.Set(true)
	defer s.Loading.Set(false)

	comments, err := s.comments.ListForPost(ctx, postID)
	if err != nil {
		log.Error().Err(err).Str("post_id", postID).Msg("failed to load comments")
		s.LastErr.Set(err)
		s.Comments.Set(nil)
		return
	}
	s.LastErr.Set(nil)
	s.Comments.Set(comments)
}

// AddComment 添加评论
// 空内容在任何远程调用之前拒绝；成功后评论数缓存 +1 并重载列表
func (s *CommentSession) AddComment(ctx context.Context, postID, content, authorName string) (string, error) {
	content = sanitize.Content(content)
	if content == "" {
		return "", ErrEmptyComment
	}

	comment := &model.Comment{
		PostID:     postID,
		Content:    content,
		AuthorID:   s.session.AuthorID(),
		AuthorName: authorName,
	}
	commentID, err := s.comments.Add(ctx, comment)
	if err != nil {
		log.Error().Err(err).Str("post_id", postID).Msg("failed to add comment")
		return "", err
	}

	if err := s.posts.IncComments(ctx, postID, 1); err != nil {
		// 计数缓存失败不影响评论本身
		log.Warn().Err(err).Str("post_id", postID).Msg("failed to bump comment counter")
	}

	s.LoadComments(ctx, postID)
	return commentID, nil
}

// DeleteComment 删除评论，仅在确实删除了文档时评论数缓存 -1
// 重复删除（如重试的请求）拿到 mongo.ErrNoDocuments，不会二次扣减
func (s *CommentSession) DeleteComment(ctx context.Context, commentID, postID string) error {
	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			log.Warn().Str("comment_id", commentID).Msg("comment already deleted")
		} else {
			log.Error().Err(err).Str("comment_id", commentID).Msg("failed to delete comment")
		}
		return err
	}

	s.Comments.Update(func(cur []*model.Comment) []*model.Comment {
		out := make([]*model.Comment, 0, len(cur))
		for _, c := range cur {
			if c.ID != commentID {
				out = append(out, c)
			}
		}
		return out
	})

	if err := s.posts.IncComments(ctx, postID, -1); err != nil {
		log.Warn().Err(err).Str("post_id", postID).Msg("failed to decrement comment counter")
	}
	return nil
}
