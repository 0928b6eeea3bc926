package ctxutil

import "context"

// userIDKeyType 使用私有类型避免与其他 context key 冲突
type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// anonymousKeyType 匿名身份标记
type anonymousKeyType struct{}

var anonymousKey = anonymousKeyType{}

// WithUserID 将 userID 注入到 context 中
// 在认证中间件解析 JWT 成功后调用
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID 从 context 中解析 userID
func GetUserID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v := ctx.Value(userIDKey)
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithAnonymous 标记当前身份是否为匿名身份
func WithAnonymous(ctx context.Context, anonymous bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, anonymousKey, anonymous)
}

// IsAnonymous 当前身份是否为匿名身份，未标记时视为匿名
func IsAnonymous(ctx context.Context) bool {
	if ctx == nil {
		return true
	}
	v, ok := ctx.Value(anonymousKey).(bool)
	if !ok {
		return true
	}
	return v
}
