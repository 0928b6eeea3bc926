package feed

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"treehole/internal/model"
	"treehole/internal/service"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// upgrader WebSocket升级器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许所有跨域请求
	},
}

// Handler 帖子流推送处理器
// 订阅共享帖子流会话，每次帖子流变化向连接推送一份完整快照
type Handler struct {
	session *service.PostSession
}

// NewHandler 创建帖子流推送处理器
func NewHandler(session *service.PostSession) *Handler {
	return &Handler{session: session}
}

// snapshot 推送给客户端的帖子流快照
type snapshot struct {
	Type  string     `json:"type"` // 固定为 posts
	Posts []feedPost `json:"posts"`
	Total int        `json:"total"`
}

type feedPost struct {
	ID         string   `json:"id"`
	Content    string   `json:"content"`
	AuthorID   string   `json:"author_id"`
	AuthorName string   `json:"author_name"`
	Anonymous  bool     `json:"anonymous"`
	Likes      int      `json:"likes"`
	Comments   int      `json:"comments"`
	Tags       []string `json:"tags,omitempty"`
	CreatedAt  string   `json:"created_at"`
}

func toSnapshot(posts []*model.Post) snapshot {
	s := snapshot{Type: "posts", Posts: make([]feedPost, 0, len(posts)), Total: len(posts)}
	for _, p := range posts {
		s.Posts = append(s.Posts, feedPost{
			ID:         p.ID,
			Content:    p.Content,
			AuthorID:   p.AuthorID,
			AuthorName: p.AuthorName,
			Anonymous:  p.IsAnonymous(),
			Likes:      p.Likes,
			Comments:   p.Comments,
			Tags:       p.Tags,
			CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		})
	}
	return s
}

// client 一条推送连接
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Serve 升级连接并开始推送帖子流
// 连接建立后立即推送当前快照，之后每次帖子流变化推送新快照
func (h *Handler) Serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	cl := &client{
		conn: conn,
		send: make(chan []byte, 8),
	}

	ch, cancel := h.session.Posts.Subscribe()
	done := make(chan struct{})

	// 订阅转发：帖子流快照序列化后进入发送通道
	go func() {
		defer close(cl.send)
		for {
			select {
			case <-done:
				return
			case posts, ok := <-ch:
				if !ok {
					return
				}
				data, err := json.Marshal(toSnapshot(posts))
				if err != nil {
					log.Error().Err(err).Msg("failed to marshal feed snapshot")
					continue
				}
				select {
				case cl.send <- data:
				case <-done:
					return
				}
			}
		}
	}()

	go cl.writePump()
	cl.readPump(func() {
		cancel()
		close(done)
	})
}

// writePump 将快照从通道发送到WebSocket连接
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 通道已关闭
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump 只为感知连接关闭，收到的消息全部丢弃
func (c *client) readPump(onClose func()) {
	defer func() {
		onClose()
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}
	}
}
