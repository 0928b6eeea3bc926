package comment

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

// CommentInfo 评论信息（用于响应）
type CommentInfo struct {
	ID         string `json:"id"`          // 评论ID
	PostID     string `json:"post_id"`     // 所属帖子ID
	Content    string `json:"content"`     // 内容
	AuthorID   string `json:"author_id"`   // 作者ID，匿名为空
	AuthorName string `json:"author_name"` // 作者显示名
	Likes      int    `json:"likes"`       // 点赞数
	CreatedAt  string `json:"created_at"`  // 创建时间
}

func toCommentInfo(cm *model.Comment) CommentInfo {
	return CommentInfo{
		ID:         cm.ID,
		PostID:     cm.PostID,
		Content:    cm.Content,
		AuthorID:   cm.AuthorID,
		AuthorName: cm.AuthorName,
		Likes:      cm.Likes,
		CreatedAt:  cm.CreatedAt.Format(time.RFC3339),
	}
}

func toCommentInfos(comments []*model.Comment) []CommentInfo {
	infos := make([]CommentInfo, 0, len(comments))
	for _, cm := range comments {
		infos = append(infos, toCommentInfo(cm))
	}
	return infos
}
