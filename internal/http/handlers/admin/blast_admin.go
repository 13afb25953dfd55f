package admin

import (
	"errors"

	"github.com/loopiify-next/internal/http/response"
	"github.com/loopiify-next/internal/service"

	"github.com/gin-gonic/gin"
)

// SendBlast 创建一次群发，消息按门店间隔错峰排期
func (h *Handler) SendBlast(c *gin.Context) {
	var req service.BlastInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	result, err := h.BlastService.Send(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBlastMessageEmpty):
			respondError(c, response.CodeBadRequest, "群发内容不能为空", nil)
		case errors.Is(err, service.ErrStoreNotFound):
			respondError(c, response.CodeNotFound, "门店不存在", nil)
		case errors.Is(err, service.ErrBlastNoRecipients):
			respondError(c, response.CodeConflict, "没有可发送的顾客", nil)
		default:
			respondError(c, response.CodeInternal, "群发创建失败", err)
		}
		return
	}
	response.Success(c, result)
}
