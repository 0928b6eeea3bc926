package model

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Identity 认证身份记录（identities 集合）
// 对应托管认证后端的最小身份记录：凭据、展示名、验证状态
// 匿名身份没有邮箱和密码，仅作为设备会话的归属锚点
type Identity struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Email         string    `bson:"email,omitempty" json:"email,omitempty"`
	PasswordHash  string    `bson:"password_hash,omitempty" json:"-"`
	DisplayName   string    `bson:"display_name,omitempty" json:"display_name,omitempty"`
	EmailVerified bool      `bson:"email_verified" json:"email_verified"`
	VerifyCode    string    `bson:"verify_code,omitempty" json:"-"` // 邮箱验证码，验证通过后清除
	Anonymous     bool      `bson:"anonymous" json:"anonymous"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}

// ToUser 由身份记录合成用户视图
// 展示名缺失时退化为 "用户"+ID前5位
func (i *Identity) ToUser() *User {
	username := i.DisplayName
	if username == "" {
		username = DefaultUsername(i.ID)
	}
	return &User{
		ID:            i.ID,
		Username:      username,
		Email:         i.Email,
		CreatedAt:     i.CreatedAt,
		EmailVerified: i.EmailVerified,
	}
}

// Collection 返回集合名称
func (i *Identity) Collection() string { return "identities" }

// EnsureIndexes 创建和维护索引
func (i *Identity) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(i.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			// 匿名身份没有邮箱，稀疏索引避免空值冲突
			Options: options.Index().SetName("idx_email").SetUnique(true).SetSparse(true),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
