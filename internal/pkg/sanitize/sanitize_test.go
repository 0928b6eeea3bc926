package sanitize

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestContent(t *testing.T) {
	Convey("Content 清洗用户提交的文本", t, func() {
		Convey("纯文本原样保留", func() {
			So(Content("今天天气不错"), ShouldEqual, "今天天气不错")
		})

		Convey("剥掉HTML标签", func() {
			So(Content("<b>加粗</b>的文字"), ShouldEqual, "加粗的文字")
			So(Content(`<a href="http://evil">点我</a>`), ShouldEqual, "点我")
		})

		Convey("脚本整体移除", func() {
			So(Content("<script>alert(1)</script>"), ShouldEqual, "")
		})

		Convey("首尾空白去除", func() {
			So(Content("  留言  "), ShouldEqual, "留言")
		})

		Convey("只有标记和空白时结果为空串", func() {
			So(Content("  <p> </p>  "), ShouldEqual, "")
		})
	})
}
