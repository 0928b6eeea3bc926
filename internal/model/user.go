package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// User 用户资料实体（users 集合）
// ID与认证身份ID相同；身份存在时资料文档可能尚未建立，
// 读取缺失资料时按ID合成默认资料，不落库
type User struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Username      string    `bson:"username" json:"username"`
	Email         string    `bson:"email" json:"email"`
	AvatarURL     string    `bson:"avatar_url" json:"avatar_url"`
	Bio           string    `bson:"bio" json:"bio"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	EmailVerified bool      `bson:"email_verified" json:"email_verified"`
}

// DefaultUsername 根据用户ID合成确定性的默认用户名
func DefaultUsername(userID string) string {
	name := userID
	if runes := []rune(userID); len(runes) > 5 {
		name = string(runes[:5])
	}
	return "用户" + name
}

// DefaultUser 合成默认用户资料，同一userID多次调用结果一致
func DefaultUser(userID string) *User {
	return &User{
		ID:        userID,
		Username:  DefaultUsername(userID),
		Email:     "",
		CreatedAt: time.Now(),
	}
}

// Collection 返回集合名称
func (u *User) Collection() string { return "users" }

// EnsureIndexes 创建和维护索引
func (u *User) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(u.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_username"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_created_at"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
