package admin

import (
	"errors"
	"strconv"

	"github.com/loopiify-next/internal/http/response"
	"github.com/loopiify-next/internal/repository"
	"github.com/loopiify-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCampaigns 获取抽奖活动列表
func (h *Handler) GetCampaigns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	onlyRunning, _ := strconv.ParseBool(c.DefaultQuery("only_running", "false"))
	filter := repository.CampaignListFilter{
		Page:        page,
		PageSize:    pageSize,
		StoreID:     queryUint(c, "store_id"),
		Search:      c.Query("search"),
		OnlyRunning: onlyRunning,
		WithPrizes:  true,
	}

	campaigns, total, err := h.CampaignService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "抽奖活动列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, campaigns, response.NewPagination(page, pageSize, total))
}

// GetCampaign 获取抽奖活动详情（含奖品）
func (h *Handler) GetCampaign(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	campaign, err := h.CampaignService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCampaignNotFound) {
			respondError(c, response.CodeNotFound, "抽奖活动不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "抽奖活动获取失败", err)
		return
	}
	response.Success(c, campaign)
}

// CreateCampaign 创建抽奖活动及奖品
func (h *Handler) CreateCampaign(c *gin.Context) {
	var req service.CampaignCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	campaign, err := h.CampaignService.Create(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProbabilityInvalid):
			respondError(c, response.CodeBadRequest, "奖品概率之和必须为 100", nil)
		case errors.Is(err, service.ErrPrizeConfigInvalid):
			respondError(c, response.CodeBadRequest, "奖品配置不合法", err)
		default:
			respondError(c, response.CodeInternal, "抽奖活动创建失败", err)
		}
		return
	}
	response.Success(c, campaign)
}

// EndCampaign 结束抽奖活动，不可逆
func (h *Handler) EndCampaign(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.CampaignService.End(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			respondError(c, response.CodeNotFound, "抽奖活动不存在", nil)
		case errors.Is(err, service.ErrCampaignEnded):
			respondError(c, response.CodeConflict, "抽奖活动已结束", nil)
		default:
			respondError(c, response.CodeInternal, "抽奖活动结束失败", err)
		}
		return
	}
	response.Success(c, nil)
}

// RunDraw 执行一次抽奖
func (h *Handler) RunDraw(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := h.DrawService.RunDraw(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			respondError(c, response.CodeNotFound, "抽奖活动不存在", nil)
		case errors.Is(err, service.ErrCampaignEnded):
			respondError(c, response.CodeConflict, "抽奖活动已结束", nil)
		case errors.Is(err, service.ErrNoEligibleCustomers):
			respondError(c, response.CodeConflict, "没有满足条件的顾客", nil)
		case errors.Is(err, service.ErrPrizesExhausted):
			respondError(c, response.CodeConflict, "奖品已全部抽完", nil)
		case errors.Is(err, service.ErrPrizeConfigInvalid):
			respondError(c, response.CodeConflict, "活动没有可用奖品", nil)
		default:
			respondError(c, response.CodeInternal, "抽奖执行失败", err)
		}
		return
	}
	response.Success(c, result)
}

// GetCampaignEntries 获取活动抽奖记录
func (h *Handler) GetCampaignEntries(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	entries, total, err := h.CampaignService.ListEntries(repository.EntryListFilter{
		Page:       page,
		PageSize:   pageSize,
		CampaignID: id,
		CustomerID: queryUint(c, "customer_id"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "抽奖记录获取失败", err)
		return
	}
	response.SuccessWithPage(c, entries, response.NewPagination(page, pageSize, total))
}
