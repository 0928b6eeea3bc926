package post

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetPost 帖子详情
// @Summary      帖子详情
// @Description  按ID获取单个帖子
// @Tags         帖子
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "帖子ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toPostInfo(p),
	})
}
