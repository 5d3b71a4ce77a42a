package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"go.uber.org/zap"

	"intergalactic/internal/logger"
	"intergalactic/pkg/auth"
	"intergalactic/pkg/websocket"
)

var upgrader = gorilla.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketApi 通知推送连接控制器
type WebSocketApi struct {
	logger *zap.SugaredLogger
}

// NewWebSocketApi 创建WebSocket API实例
func NewWebSocketApi() *WebSocketApi {
	return &WebSocketApi{
		logger: logger.GetSugaredLogger(),
	}
}

// Connect 建立通知推送连接
// 浏览器WebSocket无法自定义请求头，token走查询参数
func (api *WebSocketApi) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Status(http.StatusUnauthorized)
		return
	}

	claims, err := auth.ParseToken(token)
	if err != nil || claims.Type != auth.AccessToken {
		api.logger.Warnf("websocket连接认证失败: %v", err)
		c.Status(http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		api.logger.Warnf("websocket升级失败: %v", err)
		return
	}

	websocket.NewClient(claims.UserID, conn)
	api.logger.Infof("用户 %d 建立websocket连接", claims.UserID)
}
