package post

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"treehole/internal/model"
	"treehole/internal/pkg/sanitize"
	"treehole/internal/service"
)

// UpdatePostRequest 改帖请求
type UpdatePostRequest struct {
	Content *string   `json:"content,omitempty"` // 新内容（可选）
	Tags    *[]string `json:"tags,omitempty"`    // 新标签（可选）
}

// UpdatePost 改帖
// @Summary      改帖
// @Description  部分字段更新。只有帖子作者（或其发出的匿名帖子所在设备）可以修改
// @Tags         帖子
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string             true  "帖子ID"
// @Param        request  body      UpdatePostRequest  true  "改帖请求"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	postID := c.Param("id")

	p, err := h.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    40401,
				Message: "帖子不存在",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "获取帖子失败",
		})
		return
	}

	if !h.canModify(c, p) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Code:    40301,
			Message: "无权修改该帖子",
		})
		return
	}

	updates := bson.M{}
	if req.Content != nil {
		content := sanitize.Content(*req.Content)
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
		updates["content"] = content
	}
	if req.Tags != nil {
		updates["tags"] = *req.Tags
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40004,
			Message: "没有需要更新的字段",
		})
		return
	}

	if err := h.posts.Update(ctx, postID, updates); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50002,
			Message: "更新帖子失败",
		})
		return
	}

	h.refreshFeed()

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新成功",
	})
}
