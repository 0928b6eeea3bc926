package service

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"

	"treehole/internal/config"
	"treehole/internal/pkg/mail"
)

func newTestUserSession() (*UserSession, *fakeUserRepo) {
	identities := newFakeIdentityRepo()
	users := newFakeUserRepo()
	auth := NewAuthService(identities, users, "test-secret", time.Hour, mail.NewSender(&config.MailConfig{}))
	return NewUserSession(auth, users), users
}

func TestUserSession_RegisterLoginLogout(t *testing.T) {
	ctx := context.Background()

	Convey("用户会话的注册、登录与登出", t, func() {
		s, _ := newTestUserSession()

		So(s.IsLoggedIn.Get(), ShouldBeFalse)
		So(s.CurrentUser.Get(), ShouldBeNil)

		Convey("注册成功后即为登录态", func() {
			userID, err := s.Register(ctx, "a@example.com", "secret123", "树洞用户")
			So(err, ShouldBeNil)
			So(s.IsLoggedIn.Get(), ShouldBeTrue)

			u := s.CurrentUser.Get()
			So(u, ShouldNotBeNil)
			So(u.ID, ShouldEqual, userID)
			So(u.Username, ShouldEqual, "树洞用户")

			Convey("登出清空本地状态", func() {
				s.Logout()
				So(s.IsLoggedIn.Get(), ShouldBeFalse)
				So(s.CurrentUser.Get(), ShouldBeNil)
				So(s.Profile.Get(), ShouldBeNil)

				Convey("登出后可重新登录", func() {
					loginID, err := s.Login(ctx, "a@example.com", "secret123")
					So(err, ShouldBeNil)
					So(loginID, ShouldEqual, userID)
					So(s.IsLoggedIn.Get(), ShouldBeTrue)
				})
			})
		})

		Convey("注册失败不进入登录态，错误记入 LastErr", func() {
			_, err := s.Register(ctx, "a@example.com", "123", "")
			So(err, ShouldEqual, ErrPasswordTooShort)
			So(s.IsLoggedIn.Get(), ShouldBeFalse)
			So(s.LastErr.Get(), ShouldEqual, ErrPasswordTooShort)
		})

		Convey("登录失败不进入登录态", func() {
			_, err := s.Login(ctx, "nobody@example.com", "secret123")
			So(err, ShouldEqual, ErrUserNotFound)
			So(s.IsLoggedIn.Get(), ShouldBeFalse)
		})
	})
}

func TestUserSession_Profile(t *testing.T) {
	ctx := context.Background()

	Convey("用户资料加载与更新", t, func() {
		s, users := newTestUserSession()

		userID, err := s.Register(ctx, "a@example.com", "secret123", "")
		So(err, ShouldBeNil)

		Convey("LoadProfile 得到注册时建立的资料", func() {
			s.LoadProfile(ctx, userID)
			p := s.Profile.Get()
			So(p, ShouldNotBeNil)
			So(p.Username, ShouldEqual, "用户"+userID[:5])
		})

		Convey("资料文档不存在时合成确定性默认资料，不落库", func() {
			s.LoadProfile(ctx, "ghost-user-id")
			first := s.Profile.Get()
			So(first, ShouldNotBeNil)
			So(first.Username, ShouldEqual, "用户ghost")

			s.LoadProfile(ctx, "ghost-user-id")
			second := s.Profile.Get()
			So(second.Username, ShouldEqual, first.Username)

			exists, err := users.Exists(ctx, "ghost-user-id")
			So(err, ShouldBeNil)
			So(exists, ShouldBeFalse)
		})

		Convey("UpdateProfile 更新后自动重载", func() {
			err := s.UpdateProfile(ctx, userID, bson.M{"username": "新名字", "bio": "这是签名"})
			So(err, ShouldBeNil)

			p := s.Profile.Get()
			So(p, ShouldNotBeNil)
			So(p.Username, ShouldEqual, "新名字")
			So(p.Bio, ShouldEqual, "这是签名")
		})
	})
}
