package repository

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"treehole/internal/model"
	"treehole/internal/pkg/id"
)

// PostRepository 帖子仓库接口（供 service 层依赖）
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) (string, error)
	FindByID(ctx context.Context, postID string) (*model.Post, error)
	List(ctx context.Context, limit int64) ([]*model.Post, error)
	Search(ctx context.Context, query string) ([]*model.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	Update(ctx context.Context, postID string, updates bson.M) error
	Delete(ctx context.Context, postID string) error
	IncComments(ctx context.Context, postID string, delta int) error
	IncLikes(ctx context.Context, postID string, delta int) error
}

// PostRepo 帖子仓库
// 使用UUID作为ID，建档单次写入，文档自带自己的ID
type PostRepo struct {
	coll *mongo.Collection
}

// NewPostRepo 创建帖子仓库
func NewPostRepo(db *mongo.Database) *PostRepo {
	var p model.Post
	return &PostRepo{coll: db.Collection(p.Collection())}
}

// Create 创建帖子，返回分配的ID
// 调用方传入的ID会被丢弃，由仓库预生成UUID后一次写入
func (r *PostRepo) Create(ctx context.Context, post *model.Post) (string, error) {
	post.ID = id.New()
	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	if post.AuthorName == "" {
		post.AuthorName = model.AnonymousAuthorName
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	if _, err := r.coll.InsertOne(ctx, post); err != nil {
		return "", err
	}
	return post.ID, nil
}

// FindByID 根据ID查询帖子
func (r *PostRepo) FindByID(ctx context.Context, postID string) (*model.Post, error) {
	var p model.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": postID}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List 查询帖子列表（按创建时间倒序）
func (r *PostRepo) List(ctx context.Context, limit int64) ([]*model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	return decodePosts(ctx, cur)
}

// Search 搜索帖子：拉取全量帖子后在客户端过滤
// 匹配规则：内容或任一标签包含关键词（不区分大小写）
// 空关键词等价于无上限的 List
func (r *PostRepo) Search(ctx context.Context, query string) ([]*model.Post, error) {
	posts, err := r.List(ctx, 0)
	if err != nil {
		return nil, err
	}

	matched := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		if matchesQuery(p, query) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ListByAuthor 查询指定作者的帖子（按创建时间倒序，服务端过滤）
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"author_id": authorID}, opts)
	if err != nil {
		return nil, err
	}
	return decodePosts(ctx, cur)
}

// Update 部分字段更新，键值对不做 schema 校验
func (r *PostRepo) Update(ctx context.Context, postID string, updates bson.M) error {
	set := bson.M{"updated_at": time.Now()}
	for k, v := range updates {
		set[k] = v
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$set": set})
	return err
}

// Delete 删除帖子
// 不级联删除评论，也不触碰设备本地索引（由调用方负责）
func (r *PostRepo) Delete(ctx context.Context, postID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": postID})
	return err
}

// IncComments 原子调整评论数缓存
func (r *PostRepo) IncComments(ctx context.Context, postID string, delta int) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"comments": delta}})
	return err
}

// IncLikes 原子调整点赞数
func (r *PostRepo) IncLikes(ctx context.Context, postID string, delta int) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"likes": delta}})
	return err
}

// matchesQuery 帖子是否命中搜索词：内容或任一标签的子串匹配，不区分大小写
func matchesQuery(p *model.Post, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Content), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// decodePosts 逐条解码，解析失败的文档跳过而不是整批失败
func decodePosts(ctx context.Context, cur *mongo.Cursor) ([]*model.Post, error) {
	defer cur.Close(ctx)

	var posts []*model.Post
	for cur.Next(ctx) {
		var p model.Post
		if err := cur.Decode(&p); err != nil {
			log.Warn().Err(err).Msg("skipping undecodable post document")
			continue
		}
		posts = append(posts, &p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}
