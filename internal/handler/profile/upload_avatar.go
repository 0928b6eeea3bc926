package profile

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"treehole/internal/pkg/ctxutil"
)

// UploadAvatar 上传头像
// @Summary      上传头像
// @Description  上传头像文件并更新当前登录用户资料中的头像URL
// @Tags         资料
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        avatar  formData  file  true  "头像文件"
// @Success      200     {object}  map[string]interface{}
// @Failure      400     {object}  ErrorResponse
// @Failure      401     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/v1/users/me/avatar [post]
func (h *Handler) UploadAvatar(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := ctxutil.GetUserID(ctx)
	if !ok || ctxutil.IsAnonymous(ctx) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "未授权",
		})
		return
	}

	if h.store == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Code:    50301,
			Message: "存储服务未配置",
		})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "缺少头像文件",
			Detail:  err.Error(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40002,
			Message: "读取头像文件失败",
		})
		return
	}
	defer file.Close()

	key := fmt.Sprintf("avatars/%s%s", userID, filepath.Ext(fileHeader.Filename))
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := h.store.Upload(ctx, key, file, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "上传头像失败",
		})
		return
	}

	if err := h.users.Update(ctx, userID, bson.M{"avatar_url": url}); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50002,
			Message: "更新头像URL失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "上传成功",
		"data": gin.H{
			"avatar_url": url,
		},
	})
}
