package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"intergalactic/internal/logger"
	"intergalactic/pkg/auth"
	"intergalactic/pkg/response"
)

// JWTAuth JWT认证中间件
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseAuthHeader(c)
		if err != nil {
			response.Unauthorized(c, "请先登录", err)
			c.Abort()
			return
		}

		if claims.Type != auth.AccessToken {
			logger.Warnf("使用了错误类型的令牌: %v", claims.Type)
			response.Unauthorized(c, "使用了错误类型的令牌", errors.New("需要访问令牌"))
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Set("tokenID", claims.TokenID)
		c.Next()
	}
}

// OptionalAuth 可选的JWT认证中间件
// 不阻止未认证用户访问，token有效时把用户信息放入上下文
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseAuthHeader(c)
		if err != nil || claims.Type != auth.AccessToken {
			c.Next()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Set("tokenID", claims.TokenID)
		c.Next()
	}
}

// RefreshAuth 刷新令牌认证中间件
func RefreshAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseAuthHeader(c)
		if err != nil {
			response.Unauthorized(c, "请提供刷新令牌", err)
			c.Abort()
			return
		}

		if claims.Type != auth.RefreshToken {
			logger.Warnf("使用了错误类型的令牌: %v", claims.Type)
			response.Unauthorized(c, "使用了错误类型的令牌", errors.New("需要刷新令牌"))
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Set("tokenID", claims.TokenID)
		c.Next()
	}
}

// AdminAuth 管理员认证中间件
// 认证和角色检查都在放行前完成，非管理员请求不会进入后续处理链
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseAuthHeader(c)
		if err != nil {
			response.Unauthorized(c, "请先登录", err)
			c.Abort()
			return
		}

		if claims.Type != auth.AccessToken {
			logger.Warnf("使用了错误类型的令牌: %v", claims.Type)
			response.Unauthorized(c, "使用了错误类型的令牌", errors.New("需要访问令牌"))
			c.Abort()
			return
		}

		if claims.Role != "admin" {
			response.Forbidden(c, "需要管理员权限", nil)
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userRole", claims.Role)
		c.Set("tokenID", claims.TokenID)
		c.Next()
	}
}

// parseAuthHeader 从Authorization头解析Bearer令牌
func parseAuthHeader(c *gin.Context) (*auth.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("缺少Authorization头")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errors.New("Authorization格式错误")
	}

	claims, err := auth.ParseToken(parts[1])
	if err != nil {
		logger.Warnf("无效的令牌: %v", err)
		return nil, err
	}
	return claims, nil
}

// GetUserID 从上下文中获取用户ID
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUserRole 从上下文中获取用户角色
func GetUserRole(c *gin.Context) (string, bool) {
	userRole, exists := c.Get("userRole")
	if !exists {
		return "", false
	}
	return userRole.(string), true
}

// IsAdmin 判断当前请求是否来自管理员
func IsAdmin(c *gin.Context) bool {
	role, ok := GetUserRole(c)
	return ok && role == "admin"
}
