package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"treehole/internal/model"
)

// 进程内仓库实现，语义对齐 repository 包的Mongo实现

func testPost(content string) *model.Post {
	return &model.Post{Content: content, AuthorName: "测试"}
}

type fakeIdentityRepo struct {
	mu         sync.Mutex
	identities map[string]*model.Identity
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{identities: make(map[string]*model.Identity)}
}

func (r *fakeIdentityRepo) Create(ctx context.Context, identity *model.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = time.Now()
	}
	cp := *identity
	r.identities[identity.ID] = &cp
	return nil
}

func (r *fakeIdentityRepo) FindByID(ctx context.Context, identityID string) (*model.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.identities[identityID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *i
	return &cp, nil
}

func (r *fakeIdentityRepo) FindByEmail(ctx context.Context, email string) (*model.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, i := range r.identities {
		if i.Email != "" && i.Email == email {
			cp := *i
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeIdentityRepo) Update(ctx context.Context, identityID string, updates bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.identities[identityID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for k, v := range updates {
		switch k {
		case "email_verified":
			i.EmailVerified = v.(bool)
		case "verify_code":
			i.VerifyCode = v.(string)
		case "display_name":
			i.DisplayName = v.(string)
		}
	}
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Get(ctx context.Context, userID string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return model.DefaultUser(userID), nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.users[userID]
	return ok, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, userID string, updates bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil
	}
	for k, v := range updates {
		switch k {
		case "username":
			u.Username = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "avatar_url":
			u.AvatarURL = v.(string)
		case "email_verified":
			u.EmailVerified = v.(bool)
		}
	}
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, userID)
	return nil
}

type fakePostRepo struct {
	mu    sync.Mutex
	posts map[string]*model.Post
	seq   int

	createCalls int
	listCalls   int
	listErr     error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]*model.Post)}
}

func (r *fakePostRepo) Create(ctx context.Context, post *model.Post) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	r.seq++
	post.ID = fmt.Sprintf("post-%d", r.seq)
	post.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	post.UpdatedAt = post.CreatedAt
	if post.AuthorName == "" {
		post.AuthorName = model.AnonymousAuthorName
	}
	cp := *post
	r.posts[post.ID] = &cp
	return post.ID, nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, postID string) (*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	return &cp, nil
}

// sorted 按创建时间倒序返回全部帖子
func (r *fakePostRepo) sorted() []*model.Post {
	out := make([]*model.Post, 0, len(r.posts))
	for _, p := range r.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakePostRepo) listCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

func (r *fakePostRepo) List(ctx context.Context, limit int64) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := r.sorted()
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) Search(ctx context.Context, query string) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	q := strings.ToLower(query)
	var matched []*model.Post
	for _, p := range r.sorted() {
		if strings.Contains(strings.ToLower(p.Content), q) {
			matched = append(matched, p)
			continue
		}
		for _, tag := range p.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				matched = append(matched, p)
				break
			}
		}
	}
	return matched, nil
}

func (r *fakePostRepo) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Post
	for _, p := range r.sorted() {
		if p.AuthorID == authorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePostRepo) Update(ctx context.Context, postID string, updates bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	for k, v := range updates {
		switch k {
		case "content":
			p.Content = v.(string)
		case "tags":
			p.Tags = v.([]string)
		}
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakePostRepo) Delete(ctx context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, postID)
	return nil
}

func (r *fakePostRepo) IncComments(ctx context.Context, postID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return errors.New("post not found")
	}
	p.Comments += delta
	return nil
}

func (r *fakePostRepo) IncLikes(ctx context.Context, postID string, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return errors.New("post not found")
	}
	p.Likes += delta
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []*model.Comment
	seq      int

	addCalls int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{}
}

func (r *fakeCommentRepo) Add(ctx context.Context, comment *model.Comment) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addCalls++
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	comment.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	if comment.AuthorName == "" {
		comment.AuthorName = model.AnonymousAuthorName
	}
	cp := *comment
	r.comments = append(r.comments, &cp)
	return comment.ID, nil
}

func (r *fakeCommentRepo) ListForPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Comment
	for _, cm := range r.comments {
		if cm.PostID == postID {
			cp := *cm
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, commentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.comments[:0]
	removed := false
	for _, cm := range r.comments {
		if cm.ID != commentID {
			out = append(out, cm)
		} else {
			removed = true
		}
	}
	r.comments = out
	if !removed {
		return mongo.ErrNoDocuments
	}
	return nil
}
