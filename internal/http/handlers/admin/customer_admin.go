package admin

import (
	"strconv"
	"time"

	"github.com/loopiify-next/internal/http/response"
	"github.com/loopiify-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetCustomers 获取顾客列表，支持搜索与消费/下单时间筛选
func (h *Handler) GetCustomers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		StoreID:  queryUint(c, "store_id"),
		Search:   c.Query("search"),
	}
	if raw := c.Query("min_spend"); raw != "" {
		filter.MinSpend = &raw
	}
	if raw := c.Query("ordered_from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "ordered_from 时间格式错误", err)
			return
		}
		filter.OrderedFrom = &parsed
	}
	if raw := c.Query("ordered_to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "ordered_to 时间格式错误", err)
			return
		}
		filter.OrderedTo = &parsed
	}

	customers, total, err := h.CustomerRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "顾客列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, customers, response.NewPagination(page, pageSize, total))
}

// GetCustomer 获取顾客详情及会员卡
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	customer, err := h.CustomerRepo.GetByID(id)
	if err != nil {
		respondError(c, response.CodeInternal, "顾客获取失败", err)
		return
	}
	if customer == nil {
		respondError(c, response.CodeNotFound, "顾客不存在", nil)
		return
	}

	// 顾客尚未产生累计时会员卡为 nil
	card, err := h.LoyaltyService.CustomerCard(customer.StoreID, customer.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "会员卡获取失败", err)
		return
	}
	response.Success(c, gin.H{
		"customer": customer,
		"card":     card,
	})
}
