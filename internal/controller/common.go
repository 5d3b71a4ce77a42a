package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"intergalactic/internal/middleware"
)

// getUserIDFromContext 从上下文中获取用户ID
func getUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		return 0, errors.New("用户未登录")
	}
	return userID, nil
}

// parseIDParam 解析路径中的ID参数
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
