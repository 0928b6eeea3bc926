package post

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// LikePost 点赞
// @Summary      点赞
// @Description  帖子点赞数原子加一
// @Tags         帖子
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "帖子ID"
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/posts/{id}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
	ctx := c.Request.Context()
	postID := c.Param("id")

	if err := h.posts.IncLikes(ctx, postID, 1); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "点赞失败",
		})
		return
	}

	h.refreshFeed()

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
	})
}
