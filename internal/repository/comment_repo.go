package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"treehole/internal/model"
	"treehole/internal/pkg/id"
)

// CommentRepository 评论仓库接口（供 service 层依赖）
type CommentRepository interface {
	Add(ctx context.Context, comment *model.Comment) (string, error)
	ListForPost(ctx context.Context, postID string) ([]*model.Comment, error)
	Delete(ctx context.Context, commentID string) error
}

// CommentRepo 评论仓库
type CommentRepo struct {
	coll *mongo.Collection
}

// NewCommentRepo 创建评论仓库
func NewCommentRepo(db *mongo.Database) *CommentRepo {
	var c model.Comment
	return &CommentRepo{coll: db.Collection(c.Collection())}
}

// Add 添加评论，返回分配的ID
func (r *CommentRepo) Add(ctx context.Context, comment *model.Comment) (string, error) {
	comment.ID = id.New()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	if comment.AuthorName == "" {
		comment.AuthorName = model.AnonymousAuthorName
	}

	if _, err := r.coll.InsertOne(ctx, comment); err != nil {
		return "", err
	}
	return comment.ID, nil
}

// ListForPost 查询帖子下的评论（按创建时间正序，与帖子流方向相反）
func (r *CommentRepo) ListForPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"post_id": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var comments []*model.Comment
	for cur.Next(ctx) {
		var c model.Comment
		if err := cur.Decode(&c); err != nil {
			log.Warn().Err(err).Msg("skipping undecodable comment document")
			continue
		}
		comments = append(comments, &c)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// Delete 删除评论
// 评论不存在时返回 mongo.ErrNoDocuments，调用方据此决定是否回退计数缓存
func (r *CommentRepo) Delete(ctx context.Context, commentID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": commentID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
