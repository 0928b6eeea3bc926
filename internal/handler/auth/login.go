package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"treehole/internal/service"
)

// LoginRequest 邮箱登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // 邮箱（必填）
	Password string `json:"password" binding:"required"`    // 密码（必填）
}

// Login 邮箱登录
// @Summary      邮箱登录
// @Description  邮箱密码登录，返回Access Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "登录请求"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/v1/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	userID, err := h.authService.LoginWithEmail(ctx, req.Email, req.Password)
	if err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001

		switch {
		case errors.Is(err, service.ErrEmptyCredentials):
			code = http.StatusBadRequest
			errorCode = 40001
		case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrInvalidPassword):
			code = http.StatusUnauthorized
			errorCode = 40101
		}

		c.JSON(code, ErrorResponse{
			Code:    errorCode,
			Message: err.Error(),
		})
		return
	}

	token, expiresIn, err := h.authService.GenerateToken(userID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50002,
			Message: "生成Token失败",
		})
		return
	}

	user := h.authService.CurrentUser(ctx, userID)

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "登录成功",
		"data": TokenData{
			AccessToken: token,
			ExpiresIn:   expiresIn,
			TokenType:   "Bearer",
			User:        toUserInfo(user),
		},
	})
}
