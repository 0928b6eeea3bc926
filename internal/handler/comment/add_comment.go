package comment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"treehole/internal/model"
	"treehole/internal/pkg/ctxutil"
	"treehole/internal/pkg/sanitize"
	"treehole/internal/service"
)

// AddCommentRequest 发评论请求
type AddCommentRequest struct {
	Content    string `json:"content" binding:"required"` // 内容（必填）
	AuthorName string `json:"author_name,omitempty"`      // 作者显示名（匿名时忽略）
}

// AddComment 发评论
// @Summary      发评论
// @Description  在帖子下发表评论，帖子的评论数缓存原子加一
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "帖子ID"
// @Param        request  body      AddCommentRequest  true  "发评论请求"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/posts/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	// 空内容在任何写入之前拒绝
	content := sanitize.Content(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40002,
			Message: service.ErrEmptyComment.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	postID := c.Param("id")

	authorID := ""
	authorName := req.AuthorName
	if !ctxutil.IsAnonymous(ctx) {
		authorID, _ = ctxutil.GetUserID(ctx)
	}

	commentID, err := h.comments.Add(ctx, &model.Comment{
		PostID:     postID,
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "发评论失败",
		})
		return
	}

	if err := h.posts.IncComments(ctx, postID, 1); err != nil {
		// 计数缓存失败不影响评论本身
		log.Warn().Err(err).Str("post_id", postID).Msg("failed to bump comment counter")
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "评论成功",
		"data": gin.H{
			"comment_id": commentID,
		},
	})
}
