package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"treehole/internal/model"
)

// UserRepository 用户资料仓库接口（供 service 层依赖）
type UserRepository interface {
	Get(ctx context.Context, userID string) (*model.User, error)
	Exists(ctx context.Context, userID string) (bool, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, userID string, updates bson.M) error
	Delete(ctx context.Context, userID string) error
}

// UserRepo 用户资料仓库
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepo 创建用户资料仓库
func NewUserRepo(db *mongo.Database) *UserRepo {
	var u model.User
	return &UserRepo{coll: db.Collection(u.Collection())}
}

// Get 获取用户资料
// 资料文档不存在时按ID合成默认资料返回，但不落库：
// 对同一userID重复调用得到一致的默认用户名，直到显式 Create/Update
func (r *UserRepo) Get(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.DefaultUser(userID), nil
		}
		return nil, err
	}
	return &u, nil
}

// Exists 资料文档是否已落库（默认资料合成不算）
func (r *UserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create 创建（整体覆盖）用户资料
func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	// set 语义：存在则整体覆盖，不存在则建档
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, options.Replace().SetUpsert(true))
	return err
}

// Update 部分字段更新
func (r *UserRepo) Update(ctx context.Context, userID string, updates bson.M) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": updates})
	return err
}

// Delete 删除用户资料
func (r *UserRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": userID})
	return err
}
