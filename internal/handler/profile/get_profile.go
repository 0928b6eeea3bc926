package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetProfile 查用户资料
// @Summary      查用户资料
// @Description  按用户ID获取资料。资料文档不存在时返回确定性默认资料，不落库
// @Tags         资料
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "用户ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/users/{id} [get]
func (h *Handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("id")

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "获取用户资料失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    toProfileInfo(user),
	})
}
