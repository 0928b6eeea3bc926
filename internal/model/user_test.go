package model

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestDefaultUsername(t *testing.T) {
	Convey("默认用户名由用户ID合成", t, func() {
		Convey("取ID前5个字符", func() {
			So(DefaultUsername("abcdef123"), ShouldEqual, "用户abcde")
		})

		Convey("短ID整体保留", func() {
			So(DefaultUsername("abc"), ShouldEqual, "用户abc")
			So(DefaultUsername(""), ShouldEqual, "用户")
		})

		Convey("按字符而不是字节截取", func() {
			So(DefaultUsername("一二三四五六七"), ShouldEqual, "用户一二三四五")
		})

		Convey("同一ID多次调用结果一致", func() {
			So(DefaultUsername("abcdef123"), ShouldEqual, DefaultUsername("abcdef123"))
		})
	})
}

func TestDefaultUser(t *testing.T) {
	Convey("默认资料只依赖用户ID", t, func() {
		u := DefaultUser("abcdef123")
		So(u.ID, ShouldEqual, "abcdef123")
		So(u.Username, ShouldEqual, "用户abcde")
		So(u.Email, ShouldBeEmpty)
	})
}

func TestPost_IsAnonymous(t *testing.T) {
	Convey("作者ID为空即匿名帖子", t, func() {
		So((&Post{AuthorID: ""}).IsAnonymous(), ShouldBeTrue)
		So((&Post{AuthorID: "user-1"}).IsAnonymous(), ShouldBeFalse)
	})
}
