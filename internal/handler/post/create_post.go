package post

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"treehole/internal/model"
	"treehole/internal/pkg/ctxutil"
	"treehole/internal/pkg/sanitize"
	"treehole/internal/service"
)

// CreatePostRequest 发帖请求
type CreatePostRequest struct {
	Content    string   `json:"content" binding:"required"` // 内容（必填，至多500字）
	AuthorName string   `json:"author_name,omitempty"`      // 作者显示名（匿名时忽略）
	Tags       []string `json:"tags,omitempty"`             // 标签（可选）
}

// CreatePost 发帖
// @Summary      发帖
// @Description  发布新帖子。匿名身份发帖时作者名固定为“匿名用户”，帖子ID记入设备匿名索引
// @Tags         帖子
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      CreatePostRequest  true  "发帖请求"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	content := sanitize.Content(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40002,
			Message: service.ErrEmptyContent.Error(),
		})
		return
	}
	if utf8.RuneCountInString(content) > model.MaxPostContentLength {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40003,
			Message: service.ErrContentTooLong.Error(),
		})
		return
	}

	ctx := c.Request.Context()

	authorID := ""
	authorName := req.AuthorName
	if !ctxutil.IsAnonymous(ctx) {
		authorID, _ = ctxutil.GetUserID(ctx)
	}
	if authorID == "" {
		authorName = model.AnonymousAuthorName
	}

	p := &model.Post{
		Content:    content,
		AuthorID:   authorID,
		AuthorName: authorName,
		Tags:       req.Tags,
	}
	postID, err := h.posts.Create(ctx, p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "发帖失败",
		})
		return
	}

	// 匿名帖子归属到设备本地索引
	if authorID == "" {
		if dev := deviceID(c); dev != "" {
			if err := h.index.Remember(ctx, dev, postID); err != nil {
				log.Warn().Err(err).Str("post_id", postID).Msg("failed to remember anonymous post")
			}
		}
	}

	h.refreshFeed()

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "发帖成功",
		"data": gin.H{
			"post_id": postID,
		},
	})
}
