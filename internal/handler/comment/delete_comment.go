package comment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// DeleteComment 删评论
// @Summary      删评论
// @Description  删除评论，帖子的评论数缓存原子减一
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id          path      string  true  "帖子ID"
// @Param        comment_id  path      string  true  "评论ID"
// @Success      200         {object}  map[string]string
// @Failure      404         {object}  ErrorResponse
// @Failure      500         {object}  ErrorResponse
// @Router       /api/v1/posts/{id}/comments/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	ctx := c.Request.Context()
	postID := c.Param("id")
	commentID := c.Param("comment_id")

	if err := h.comments.Delete(ctx, commentID); err != nil {
		// 评论已不存在时不再回退计数，避免重试请求把缓存扣成负数
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    40402,
				Message: "评论不存在",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "删除评论失败",
		})
		return
	}

	if err := h.posts.IncComments(ctx, postID, -1); err != nil {
		log.Warn().Err(err).Str("post_id", postID).Msg("failed to decrement comment counter")
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}
