package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Anonymous 发放匿名身份
// @Summary      发放匿名身份
// @Description  为设备签发匿名身份和Access Token，无需任何凭证
// @Tags         认证
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/auth/anonymous [post]
func (h *Handler) Anonymous(c *gin.Context) {
	ctx := c.Request.Context()

	identity, err := h.authService.EnsureAnonymous(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "创建匿名身份失败",
		})
		return
	}

	token, expiresIn, err := h.authService.GenerateToken(identity.ID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50002,
			Message: "生成Token失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": TokenData{
			AccessToken: token,
			ExpiresIn:   expiresIn,
			TokenType:   "Bearer",
			User:        toUserInfo(identity.ToUser()),
		},
	})
}
