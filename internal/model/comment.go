package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Comment 评论实体
// 删除帖子不会级联删除评论
type Comment struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	PostID     string    `bson:"post_id" json:"post_id"`
	Content    string    `bson:"content" json:"content"`
	AuthorID   string    `bson:"author_id" json:"author_id"`
	AuthorName string    `bson:"author_name" json:"author_name"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	Likes      int       `bson:"likes" json:"likes"`
}

// Collection 返回集合名称
func (c *Comment) Collection() string { return "comments" }

// EnsureIndexes 创建和维护索引
// 评论按创建时间正序展示，与帖子流方向相反
func (c *Comment) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(c.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_post_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
