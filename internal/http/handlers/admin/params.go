package admin

import (
	"strconv"

	"github.com/loopiify-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// paramID 解析路径里的数字 ID，非法时已写入错误响应
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "ID 参数错误", err)
		return 0, false
	}
	return uint(value), true
}

// queryUint 解析查询参数里的数字，缺省或非法返回 0
func queryUint(c *gin.Context, name string) uint {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(value)
}
