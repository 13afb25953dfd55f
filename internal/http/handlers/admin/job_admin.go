package admin

import (
	"strconv"

	"github.com/loopiify-next/internal/http/response"
	"github.com/loopiify-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetJobs 获取 WhatsApp 消息任务列表
func (h *Handler) GetJobs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	jobs, total, err := h.FollowupService.ListJobs(repository.JobListFilter{
		Page:       page,
		PageSize:   pageSize,
		StoreID:    queryUint(c, "store_id"),
		CustomerID: queryUint(c, "customer_id"),
		Status:     c.Query("status"),
		FlowID:     queryUint(c, "flow_id"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "消息任务列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, jobs, response.NewPagination(page, pageSize, total))
}
