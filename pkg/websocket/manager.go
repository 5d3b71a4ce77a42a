package websocket

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"intergalactic/internal/logger"
)

var (
	manager     *Manager
	managerOnce sync.Once
)

// Manager 管理在线用户的websocket连接
// 同一用户允许多个连接（多标签页）
type Manager struct {
	mu      sync.RWMutex
	clients map[uint]map[*Client]struct{}
}

// GetManager 获取全局连接管理器
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{
			clients: make(map[uint]map[*Client]struct{}),
		}
	})
	return manager
}

// Register 注册客户端连接
func (m *Manager) Register(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clients[c.userID] == nil {
		m.clients[c.userID] = make(map[*Client]struct{})
	}
	m.clients[c.userID][c] = struct{}{}
}

// Unregister 注销客户端连接
func (m *Manager) Unregister(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if conns, ok := m.clients[c.userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(m.clients, c.userID)
		}
	}
}

// SendToUser 向指定用户的所有连接推送消息
// 用户不在线时静默丢弃，未读状态以数据库为准
func (m *Manager) SendToUser(userID uint, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for c := range m.clients[userID] {
		select {
		case c.send <- data:
		default:
			// 发送缓冲已满，丢弃本条消息
			logger.Warn("websocket发送缓冲已满", zap.Uint("user_id", userID))
		}
	}
	return nil
}

// Shutdown 关闭所有连接
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, conns := range m.clients {
		for c := range conns {
			c.close()
		}
	}
	m.clients = make(map[uint]map[*Client]struct{})
}
