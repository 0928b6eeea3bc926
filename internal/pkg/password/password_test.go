package password

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHashAndVerify(t *testing.T) {
	Convey("密码加密后可验证", t, func() {
		hash, err := Hash("secret123")
		So(err, ShouldBeNil)
		So(hash, ShouldNotBeEmpty)
		So(hash, ShouldNotEqual, "secret123")

		Convey("正确密码验证通过", func() {
			So(Verify("secret123", hash), ShouldBeTrue)
		})

		Convey("错误密码验证失败", func() {
			So(Verify("wrong", hash), ShouldBeFalse)
		})

		Convey("同一密码两次加密结果不同", func() {
			hash2, err := Hash("secret123")
			So(err, ShouldBeNil)
			So(hash2, ShouldNotEqual, hash)
			So(Verify("secret123", hash2), ShouldBeTrue)
		})
	})
}
