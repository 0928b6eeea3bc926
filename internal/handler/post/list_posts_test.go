package post

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
	"go.mongodb.org/mongo-driver/bson"

	"treehole/internal/model"
	"treehole/internal/pkg/prefs"
)

// stubPostRepo 只记录列表调用参数
type stubPostRepo struct {
	lastLimit int64
}

func (r *stubPostRepo) Create(ctx context.Context, post *model.Post) (string, error) {
	return "", nil
}

func (r *stubPostRepo) FindByID(ctx context.Context, postID string) (*model.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) List(ctx context.Context, limit int64) ([]*model.Post, error) {
	r.lastLimit = limit
	return nil, nil
}

func (r *stubPostRepo) Search(ctx context.Context, query string) ([]*model.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	return nil, nil
}

func (r *stubPostRepo) Update(ctx context.Context, postID string, updates bson.M) error { return nil }
func (r *stubPostRepo) Delete(ctx context.Context, postID string) error                 { return nil }
func (r *stubPostRepo) IncComments(ctx context.Context, postID string, delta int) error { return nil }
func (r *stubPostRepo) IncLikes(ctx context.Context, postID string, delta int) error    { return nil }

func TestListPosts_Limit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(repo *stubPostRepo, target string) *httptest.ResponseRecorder {
		h := NewHandler(repo, prefs.NewMemoryStore(), nil, 20)
		r := gin.New()
		r.GET("/api/v1/posts", h.ListPosts)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		return w
	}

	Convey("帖子流的条数上限", t, func() {
		Convey("未传limit时按配置的页大小拉取", func() {
			repo := &stubPostRepo{lastLimit: -1}
			w := serve(repo, "/api/v1/posts")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(repo.lastLimit, ShouldEqual, 20)
		})

		Convey("显式传limit=0才是不限", func() {
			repo := &stubPostRepo{lastLimit: -1}
			w := serve(repo, "/api/v1/posts?limit=0")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(repo.lastLimit, ShouldEqual, 0)
		})

		Convey("显式limit覆盖页大小", func() {
			repo := &stubPostRepo{lastLimit: -1}
			w := serve(repo, "/api/v1/posts?limit=5")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(repo.lastLimit, ShouldEqual, 5)
		})
	})
}
