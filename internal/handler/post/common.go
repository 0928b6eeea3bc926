package post

import (
	"time"

	"github.com/gin-gonic/gin"

	"treehole/internal/model"
	"treehole/internal/pkg/ctxutil"
)

// ErrorResponse 错误响应（所有API共用）
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// PostInfo 帖子信息（用于响应，所有API共用）
type PostInfo struct {
	ID         string   `json:"id"`             // 帖子ID
	Content    string   `json:"content"`        // 内容
	AuthorID   string   `json:"author_id"`      // 作者ID，匿名帖子为空
	AuthorName string   `json:"author_name"`    // 作者显示名
	Anonymous  bool     `json:"anonymous"`      // 是否匿名帖子
	Likes      int      `json:"likes"`          // 点赞数
	Comments   int      `json:"comments"`       // 评论数缓存
	Tags       []string `json:"tags,omitempty"` // 标签
	CreatedAt  string   `json:"created_at"`     // 创建时间
	UpdatedAt  string   `json:"updated_at"`     // 更新时间
}

// toPostInfo 将Post实体转换为PostInfo
func toPostInfo(p *model.Post) PostInfo {
	return PostInfo{
		ID:         p.ID,
		Content:    p.Content,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		Anonymous:  p.IsAnonymous(),
		Likes:      p.Likes,
		Comments:   p.Comments,
		Tags:       p.Tags,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
}

func toPostInfos(posts []*model.Post) []PostInfo {
	infos := make([]PostInfo, 0, len(posts))
	for _, p := range posts {
		infos = append(infos, toPostInfo(p))
	}
	return infos
}

// deviceID 匿名归属用的设备标识，由客户端通过请求头携带
func deviceID(c *gin.Context) string {
	return c.GetHeader("X-Device-ID")
}

// currentAuthorID 当前请求的作者ID，匿名身份为空串
func currentAuthorID(c *gin.Context) string {
	ctx := c.Request.Context()
	if ctxutil.IsAnonymous(ctx) {
		return ""
	}
	userID, _ := ctxutil.GetUserID(ctx)
	return userID
}
