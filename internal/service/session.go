package service

// Session 设备会话上下文
// 取代原系统的全局单例：设备ID与当前身份通过构造函数显式注入
type Session struct {
	DeviceID  string // 设备标识，匿名帖子索引按它分组
	UserID    string // 当前身份ID，未登录时为空
	Anonymous bool   // 当前身份是否为匿名身份
}

// AuthorID 写入帖子/评论的作者ID
// 匿名身份的帖子作者ID记为空串，只能靠设备本地索引归属
func (s Session) AuthorID() string {
	if s.Anonymous {
		return ""
	}
	return s.UserID
}

// LoggedIn 是否持有非匿名身份
func (s Session) LoggedIn() bool {
	return s.UserID != "" && !s.Anonymous
}
