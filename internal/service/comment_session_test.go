package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/mongo"

	"treehole/internal/model"
)

func newTestCommentSession(session Session) (*CommentSession, *fakeCommentRepo, *fakePostRepo) {
	comments := newFakeCommentRepo()
	posts := newFakePostRepo()
	s := NewCommentSession(comments, posts, session)
	return s, comments, posts
}

func TestCommentSession_AddComment(t *testing.T) {
	ctx := context.Background()

	Convey("发评论", t, func() {
		s, comments, posts := newTestCommentSession(Session{DeviceID: "device-1", UserID: "user-1"})

		postID, err := posts.Create(ctx, testPost("树洞第一帖"))
		So(err, ShouldBeNil)

		Convey("空内容在任何仓库调用之前拒绝", func() {
			_, err := s.AddComment(ctx, postID, "   ", "")
			So(err, ShouldEqual, ErrEmptyComment)
			So(comments.addCalls, ShouldEqual, 0)

			p, err := posts.FindByID(ctx, postID)
			So(err, ShouldBeNil)
			So(p.Comments, ShouldEqual, 0)
		})

		Convey("成功发评论后评论数缓存加一", func() {
			commentID, err := s.AddComment(ctx, postID, "顶一下", "小明")
			So(err, ShouldBeNil)
			So(commentID, ShouldNotBeEmpty)

			p, err := posts.FindByID(ctx, postID)
			So(err, ShouldBeNil)
			So(p.Comments, ShouldEqual, 1)

			Convey("评论列表同步刷新", func() {
				list := s.Comments.Get()
				So(list, ShouldHaveLength, 1)
				So(list[0].Content, ShouldEqual, "顶一下")
				So(list[0].AuthorID, ShouldEqual, "user-1")
			})
		})

		Convey("匿名会话的评论作者ID为空，作者名落为匿名用户", func() {
			anon, _, anonPosts := newTestCommentSession(Session{DeviceID: "device-1", UserID: "anon-1", Anonymous: true})
			anonPostID, err := anonPosts.Create(ctx, testPost("匿名帖"))
			So(err, ShouldBeNil)

			_, err = anon.AddComment(ctx, anonPostID, "路过", "")
			So(err, ShouldBeNil)

			list := anon.Comments.Get()
			So(list, ShouldHaveLength, 1)
			So(list[0].AuthorID, ShouldBeEmpty)
			So(list[0].AuthorName, ShouldEqual, model.AnonymousAuthorName)
		})

		Convey("评论按创建时间正序排列", func() {
			_, err := s.AddComment(ctx, postID, "第一条", "")
			So(err, ShouldBeNil)
			_, err = s.AddComment(ctx, postID, "第二条", "")
			So(err, ShouldBeNil)

			list := s.Comments.Get()
			So(list, ShouldHaveLength, 2)
			So(list[0].Content, ShouldEqual, "第一条")
			So(list[1].Content, ShouldEqual, "第二条")
		})
	})
}

func TestCommentSession_DeleteComment(t *testing.T) {
	ctx := context.Background()

	Convey("删评论", t, func() {
		s, _, posts := newTestCommentSession(Session{DeviceID: "device-1", UserID: "user-1"})

		postID, err := posts.Create(ctx, testPost("有评论的帖子"))
		So(err, ShouldBeNil)

		commentID, err := s.AddComment(ctx, postID, "等会儿就删", "")
		So(err, ShouldBeNil)
		keepID, err := s.AddComment(ctx, postID, "这条留着", "")
		So(err, ShouldBeNil)

		Convey("删除后评论数缓存减一，列表同步过滤", func() {
			So(s.DeleteComment(ctx, commentID, postID), ShouldBeNil)

			p, err := posts.FindByID(ctx, postID)
			So(err, ShouldBeNil)
			So(p.Comments, ShouldEqual, 1)

			list := s.Comments.Get()
			So(list, ShouldHaveLength, 1)
			So(list[0].ID, ShouldEqual, keepID)
		})

		Convey("每次删除只减一次计数", func() {
			So(s.DeleteComment(ctx, commentID, postID), ShouldBeNil)
			So(s.DeleteComment(ctx, keepID, postID), ShouldBeNil)

			p, err := posts.FindByID(ctx, postID)
			So(err, ShouldBeNil)
			So(p.Comments, ShouldEqual, 0)
		})

		Convey("重复删除同一条评论不会把计数扣成负数", func() {
			So(s.DeleteComment(ctx, commentID, postID), ShouldBeNil)

			err := s.DeleteComment(ctx, commentID, postID)
			So(errors.Is(err, mongo.ErrNoDocuments), ShouldBeTrue)
			So(s.DeleteComment(ctx, keepID, postID), ShouldBeNil)

			p, err := posts.FindByID(ctx, postID)
			So(err, ShouldBeNil)
			So(p.Comments, ShouldEqual, 0)
		})
	})
}
