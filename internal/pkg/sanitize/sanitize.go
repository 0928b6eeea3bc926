package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// 帖子和评论是纯文本，入库前剥掉一切标记
var policy = bluemonday.StrictPolicy()

// Content 清洗用户提交的文本内容
func Content(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
