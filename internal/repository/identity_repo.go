package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"treehole/internal/model"
)

// IdentityRepository 认证身份仓库接口（供 service 层依赖）
type IdentityRepository interface {
	Create(ctx context.Context, identity *model.Identity) error
	FindByID(ctx context.Context, identityID string) (*model.Identity, error)
	FindByEmail(ctx context.Context, email string) (*model.Identity, error)
	Update(ctx context.Context, identityID string, updates bson.M) error
}

// IdentityRepo 认证身份仓库
type IdentityRepo struct {
	coll *mongo.Collection
}

// NewIdentityRepo 创建认证身份仓库
func NewIdentityRepo(db *mongo.Database) *IdentityRepo {
	var i model.Identity
	return &IdentityRepo{coll: db.Collection(i.Collection())}
}

// Create 创建身份记录
func (r *IdentityRepo) Create(ctx context.Context, identity *model.Identity) error {
	if identity.CreatedAt.IsZero() {
		identity.CreatedAt = time.Now()
	}
	_, err := r.coll.InsertOne(ctx, identity)
	return err
}

// FindByID 根据ID查询身份
func (r *IdentityRepo) FindByID(ctx context.Context, identityID string) (*model.Identity, error) {
	var i model.Identity
	if err := r.coll.FindOne(ctx, bson.M{"_id": identityID}).Decode(&i); err != nil {
		return nil, err
	}
	return &i, nil
}

// FindByEmail 根据邮箱查询身份
func (r *IdentityRepo) FindByEmail(ctx context.Context, email string) (*model.Identity, error) {
	var i model.Identity
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&i); err != nil {
		return nil, err
	}
	return &i, nil
}

// Update 更新身份记录
func (r *IdentityRepo) Update(ctx context.Context, identityID string, updates bson.M) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": identityID}, bson.M{"$set": updates})
	return err
}
