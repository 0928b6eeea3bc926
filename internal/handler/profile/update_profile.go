package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"treehole/internal/pkg/ctxutil"
)

// UpdateProfileRequest 改资料请求
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"` // 新用户名（可选）
	Bio      *string `json:"bio,omitempty"`      // 新个性签名（可选）
}

// UpdateProfile 改用户资料
// @Summary      改用户资料
// @Description  部分字段更新当前登录用户的资料
// @Tags         资料
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      UpdateProfileRequest  true  "改资料请求"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/users/me [put]
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	userID, ok := ctxutil.GetUserID(ctx)
	if !ok || ctxutil.IsAnonymous(ctx) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "未授权",
		})
		return
	}

	updates := bson.M{}
	if req.Username != nil && *req.Username != "" {
		updates["username"] = *req.Username
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40002,
			Message: "没有需要更新的字段",
		})
		return
	}

	if err := h.users.Update(ctx, userID, updates); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "更新用户资料失败",
		})
		return
	}

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50002,
			Message: "获取用户资料失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "更新成功",
		"data":    toProfileInfo(user),
	})
}
