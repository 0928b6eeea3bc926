package comment

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListComments 帖子下的评论
// @Summary      帖子下的评论
// @Description  按创建时间正序返回帖子下的全部评论
// @Tags         评论
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "帖子ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/posts/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	ctx := c.Request.Context()
	postID := c.Param("id")

	comments, err := h.comments.ListForPost(ctx, postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "获取评论失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"comments": toCommentInfos(comments),
			"total":    len(comments),
		},
	})
}
