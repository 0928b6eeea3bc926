package post

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"treehole/internal/model"
)

// DeletePost 删帖
// @Summary      删帖
// @Description  删除帖子并把ID移出设备匿名索引。帖子下的评论不级联删除
// @Tags         帖子
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "帖子ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
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
			Message: "无权删除该帖子",
		})
		return
	}

	if err := h.posts.Delete(ctx, postID); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50002,
			Message: "删除帖子失败",
		})
		return
	}

	// 清理设备匿名索引，失败只记日志
	if dev := deviceID(c); dev != "" {
		if err := h.index.Forget(ctx, dev, postID); err != nil {
			log.Warn().Err(err).Str("post_id", postID).Msg("failed to prune anonymous post index")
		}
	}

	h.refreshFeed()

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "删除成功",
	})
}

// canModify 帖子归属判定
// 实名帖子看作者ID；匿名帖子看设备本地索引是否认领过
func (h *Handler) canModify(c *gin.Context, p *model.Post) bool {
	if p.IsAnonymous() {
		dev := deviceID(c)
		if dev == "" {
			return false
		}
		ok, err := h.index.Contains(c.Request.Context(), dev, p.ID)
		if err != nil {
			log.Warn().Err(err).Str("post_id", p.ID).Msg("failed to check anonymous post index")
			return false
		}
		return ok
	}
	userID := currentAuthorID(c)
	return userID != "" && userID == p.AuthorID
}
