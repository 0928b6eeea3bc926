package prefs

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "treehole:anonymous_posts:"

// RedisStore Redis 集合实现，部署环境使用
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 创建 Redis 索引
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(deviceID string) string {
	return keyPrefix + deviceID
}

// Remember 记录一条匿名帖子ID，幂等（SADD 天然幂等）
func (s *RedisStore) Remember(ctx context.Context, deviceID, postID string) error {
	if postID == "" {
		return nil
	}
	return s.client.SAdd(ctx, key(deviceID), postID).Err()
}

// List 返回该设备记录的全部匿名帖子ID
func (s *RedisStore) List(ctx context.Context, deviceID string) (map[string]struct{}, error) {
	members, err := s.client.SMembers(ctx, key(deviceID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]struct{}, len(members))
	for _, id := range members {
		out[id] = struct{}{}
	}
	return out, nil
}

// Contains 该帖子是否由本设备匿名发出
func (s *RedisStore) Contains(ctx context.Context, deviceID, postID string) (bool, error) {
	return s.client.SIsMember(ctx, key(deviceID), postID).Result()
}

// Forget 将帖子ID移出索引
func (s *RedisStore) Forget(ctx context.Context, deviceID, postID string) error {
	return s.client.SRem(ctx, key(deviceID), postID).Err()
}
