package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"intergalactic/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client 单个websocket连接
type Client struct {
	userID    uint
	conn      *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
}

// NewClient 创建客户端并启动读写协程
func NewClient(userID uint, conn *websocket.Conn) *Client {
	c := &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 16),
	}
	GetManager().Register(c)

	go c.writePump()
	go c.readPump()
	return c
}

// readPump 只消费控制帧，收到任何错误即断开
func (c *Client) readPump() {
	defer func() {
		GetManager().Unregister(c)
		c.close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket读取异常", zap.Uint("user_id", c.userID), zap.Error(err))
			}
			return
		}
	}
}

// writePump 发送消息并保持心跳
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
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

// close 关闭底层连接
func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.conn.Close()
	})
}
