package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnonymousAuthorName 匿名帖子的默认作者名
const AnonymousAuthorName = "匿名用户"

// MaxPostContentLength 帖子内容长度上限（字符数）
const MaxPostContentLength = 500

// Post 帖子实体
// ID使用UUID格式（string），建档时客户端预生成，单次写入即落库
// AuthorID 为空串表示匿名帖子，只能通过设备本地索引归属
type Post struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Content    string    `bson:"content" json:"content"`
	AuthorID   string    `bson:"author_id" json:"author_id"`
	AuthorName string    `bson:"author_name" json:"author_name"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
	Likes      int       `bson:"likes" json:"likes"`
	Comments   int       `bson:"comments" json:"comments"` // 评论数缓存，最终一致，仅用于展示
	Tags       []string  `bson:"tags" json:"tags"`
}

// IsAnonymous 是否匿名帖子
func (p *Post) IsAnonymous() bool {
	return p.AuthorID == ""
}

// Collection 返回集合名称
func (p *Post) Collection() string { return "posts" }

// EnsureIndexes 创建和维护索引
func (p *Post) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(p.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
		{
			Keys:    bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_author_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
