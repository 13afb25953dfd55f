package admin

import (
	"errors"
	"strconv"

	"github.com/loopiify-next/internal/http/response"
	"github.com/loopiify-next/internal/repository"
	"github.com/loopiify-next/internal/service"

	"github.com/gin-gonic/gin"
)

// FlowEnrollRequest 跟进流程报名请求
type FlowEnrollRequest struct {
	StoreID    uint `json:"store_id" binding:"required"`
	CustomerID uint `json:"customer_id" binding:"required"`
}

// GetFlows 获取跟进流程列表
func (h *Handler) GetFlows(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("only_active", "false"))
	flows, total, err := h.FollowupService.ListFlows(repository.FlowListFilter{
		Page:       page,
		PageSize:   pageSize,
		StoreID:    queryUint(c, "store_id"),
		OnlyActive: onlyActive,
		WithSteps:  true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "跟进流程列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, flows, response.NewPagination(page, pageSize, total))
}

// GetFlow 获取跟进流程详情（含步骤）
func (h *Handler) GetFlow(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	flow, err := h.FollowupService.GetFlow(id)
	if err != nil {
		if errors.Is(err, service.ErrFlowNotFound) {
			respondError(c, response.CodeNotFound, "跟进流程不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "跟进流程获取失败", err)
		return
	}
	response.Success(c, flow)
}

// CreateFlow 创建跟进流程
func (h *Handler) CreateFlow(c *gin.Context) {
	var req service.FlowInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	flow, err := h.FollowupService.CreateFlow(req)
	if err != nil {
		respondError(c, response.CodeInternal, "跟进流程创建失败", err)
		return
	}
	response.Success(c, flow)
}

// UpdateFlow 更新跟进流程并整体替换步骤
func (h *Handler) UpdateFlow(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.FlowInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	flow, err := h.FollowupService.UpdateFlow(id, req)
	if err != nil {
		if errors.Is(err, service.ErrFlowNotFound) {
			respondError(c, response.CodeNotFound, "跟进流程不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "跟进流程更新失败", err)
		return
	}
	response.Success(c, flow)
}

// DeleteFlow 删除跟进流程
func (h *Handler) DeleteFlow(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.FollowupService.DeleteFlow(id); err != nil {
		if errors.Is(err, service.ErrFlowNotFound) {
			respondError(c, response.CodeNotFound, "跟进流程不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "跟进流程删除失败", err)
		return
	}
	response.Success(c, nil)
}

// EnrollCustomer 手动为顾客排期门店启用中的跟进流程
func (h *Handler) EnrollCustomer(c *gin.Context) {
	var req FlowEnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	store, err := h.StoreService.Get(req.StoreID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, response.CodeNotFound, "门店不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "门店获取失败", err)
		return
	}
	customer, err := h.CustomerRepo.GetByID(req.CustomerID)
	if err != nil {
		respondError(c, response.CodeInternal, "顾客获取失败", err)
		return
	}
	if customer == nil || customer.StoreID != store.ID {
		respondError(c, response.CodeNotFound, "顾客不存在", nil)
		return
	}
	if err := h.FollowupService.ScheduleFlows(store, customer); err != nil {
		respondError(c, response.CodeInternal, "跟进流程排期失败", err)
		return
	}
	response.Success(c, nil)
}
