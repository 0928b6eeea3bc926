package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"treehole/internal/pkg/ctxutil"
	"treehole/internal/service"
)

// VerifyEmailRequest 邮箱验证请求
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"` // 邮箱（必填）
	Code  string `json:"code" binding:"required,len=6"`  // 验证码（必填，6位）
}

// SendVerification 重发邮箱验证码
// @Summary      重发邮箱验证码
// @Description  向当前登录用户的注册邮箱重发验证码，匿名身份拒绝
// @Tags         认证
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/auth/verify/send [post]
func (h *Handler) SendVerification(c *gin.Context) {
	ctx := c.Request.Context()

	userID, _ := ctxutil.GetUserID(ctx)
	if ctxutil.IsAnonymous(ctx) {
		userID = ""
	}

	if err := h.authService.SendEmailVerification(ctx, userID); err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001
		if errors.Is(err, service.ErrNotAuthenticated) {
			code = http.StatusUnauthorized
			errorCode = 40101
		}
		c.JSON(code, ErrorResponse{
			Code:    errorCode,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "验证码已发送",
	})
}

// VerifyEmail 校验邮箱验证码
// @Summary      校验邮箱验证码
// @Description  校验验证码并标记邮箱已验证
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request  body      VerifyEmailRequest  true  "验证请求"
// @Success      200     {object}  map[string]string
// @Failure      400     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/v1/auth/verify [post]
func (h *Handler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	if err := h.authService.VerifyEmail(ctx, req.Email, req.Code); err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			code = http.StatusBadRequest
			errorCode = 40004
		case errors.Is(err, service.ErrInvalidVerifyCode):
			code = http.StatusBadRequest
			errorCode = 40005
		}
		c.JSON(code, ErrorResponse{
			Code:    errorCode,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "邮箱验证成功",
	})
}
