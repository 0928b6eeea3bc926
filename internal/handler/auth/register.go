package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"treehole/internal/service"
)

// RegisterRequest 邮箱注册请求
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`      // 邮箱（必填）
	Password        string `json:"password" binding:"required"`         // 密码（必填，至少6位）
	ConfirmPassword string `json:"confirm_password" binding:"required"` // 确认密码（必填）
	Username        string `json:"username,omitempty"`                  // 用户名（可选，缺省生成）
}

// Register 邮箱注册
// @Summary      邮箱注册
// @Description  注册新用户，注册成功即视为已登录，返回Access Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "注册请求"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40003,
			Message: service.ErrPasswordMismatch.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	userID, err := h.authService.RegisterWithEmail(ctx, req.Email, req.Password, req.Username)
	if err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001

		switch {
		case errors.Is(err, service.ErrEmptyCredentials), errors.Is(err, service.ErrPasswordTooShort):
			code = http.StatusBadRequest
			errorCode = 40001
		case errors.Is(err, service.ErrEmailRegistered):
			code = http.StatusBadRequest
			errorCode = 40002
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

	c.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": "注册成功",
		"data": TokenData{
			AccessToken: token,
			ExpiresIn:   expiresIn,
			TokenType:   "Bearer",
			User:        toUserInfo(user),
		},
	})
}
