package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// queryInt 读取整数查询参数，非法或缺失时返回默认值
func queryInt(c *gin.Context, key string, defaultValue int) int {
	raw := c.Query(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
