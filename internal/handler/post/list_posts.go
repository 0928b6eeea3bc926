package post

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"treehole/internal/model"
)

// ListPosts 帖子流
// @Summary      帖子流
// @Description  按创建时间倒序返回帖子。带q参数时做关键词过滤，空关键词等价于全量列表
// @Tags         帖子
// @Accept       json
// @Produce      json
// @Param        q      query     string  false  "搜索关键词（内容或标签的子串，不区分大小写）"
// @Param        limit  query     int     false  "条数上限，缺省为配置的页大小，0为不限"
// @Success      200    {object}  map[string]interface{}
// @Failure      500    {object}  ErrorResponse
// @Router       /api/v1/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		posts []*model.Post
		err   error
	)
	if query, ok := c.GetQuery("q"); ok {
		posts, err = h.posts.Search(ctx, query)
	} else {
		// 未显式传limit时按配置的页大小拉取，显式传0才是不限
		limit := h.pageSize
		if raw, ok := c.GetQuery("limit"); ok {
			limit, _ = strconv.ParseInt(raw, 10, 64)
		}
		posts, err = h.posts.List(ctx, limit)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "获取帖子失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"posts": toPostInfos(posts),
			"total": len(posts),
		},
	})
}

// ListUserPosts 当前用户的帖子
// @Summary      当前用户的帖子
// @Description  返回当前登录用户发布的帖子，按创建时间倒序
// @Tags         帖子
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /api/v1/posts/mine [get]
func (h *Handler) ListUserPosts(c *gin.Context) {
	ctx := c.Request.Context()

	userID := currentAuthorID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    40101,
			Message: "未授权",
		})
		return
	}

	posts, err := h.posts.ListByAuthor(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    50001,
			Message: "获取帖子失败",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data": gin.H{
			"posts": toPostInfos(posts),
			"total": len(posts),
		},
	})
}
