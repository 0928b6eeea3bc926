package post

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"treehole/internal/model"
)

// ListAnonymousPosts 本设备的匿名帖子
// @Summary      本设备的匿名帖子
// @Description  按设备匿名索引过滤帖子流，返回本设备发出的匿名帖子
// @Tags         帖子
// @Accept       json
// @Produce      json
// @Param        X-Device-ID  header    string  true  "设备标识"
// @Success      200          {object}  map[string]interface{}
// @Failure      400          {object}  ErrorResponse
// @Failure      500          {object}  ErrorResponse
// @Router       /api/v1/posts/anonymous [get]
func (h *Handler) ListAnonymousPosts(c *gin.Context) {
	ctx := c.Request.Context()

	dev := deviceID(c)
	if dev == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "缺少设备标识",
		})
		return
	}

	ids, err := h.index.List(ctx, dev)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "读取匿名索引失败",
		})
		return
	}

	var mine []*model.Post
	if len(ids) > 0 {
		all, err := h.posts.List(ctx, 0)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Code:    50002,
				Message: "获取帖子失败",
			})
			return
		}
		for _, p := range all {
			if _, ok := ids[p.ID]; ok {
				mine = append(mine, p)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"posts": toPostInfos(mine),
			"total": len(mine),
		},
	})
}
