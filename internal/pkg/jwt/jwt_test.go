package jwt

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJWT(t *testing.T) {
	Convey("JWT 签发与验证", t, func() {
		j := NewJWT("test-secret", time.Hour)

		Convey("签发的Token可验证，取回身份信息", func() {
			token, err := j.GenerateToken("user-1", false)
			So(err, ShouldBeNil)
			So(token, ShouldNotBeEmpty)

			claims, err := j.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, "user-1")
			So(claims.Anonymous, ShouldBeFalse)
		})

		Convey("匿名标记随Token往返", func() {
			token, err := j.GenerateToken("anon-1", true)
			So(err, ShouldBeNil)

			claims, err := j.ValidateToken(token)
			So(err, ShouldBeNil)
			So(claims.UserID, ShouldEqual, "anon-1")
			So(claims.Anonymous, ShouldBeTrue)
		})

		Convey("篡改的Token验证失败", func() {
			_, err := j.ValidateToken("not-a-token")
			So(err, ShouldNotBeNil)
		})

		Convey("换密钥后旧Token验证失败", func() {
			token, err := j.GenerateToken("user-1", false)
			So(err, ShouldBeNil)

			other := NewJWT("another-secret", time.Hour)
			_, err = other.ValidateToken(token)
			So(err, ShouldNotBeNil)
		})

		Convey("过期Token返回过期错误", func() {
			short := NewJWT("test-secret", -time.Minute)
			token, err := short.GenerateToken("user-1", false)
			So(err, ShouldBeNil)

			_, err = short.ValidateToken(token)
			So(err, ShouldEqual, ErrExpiredToken)
		})
	})
}
