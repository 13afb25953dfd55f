package admin

import (
	"errors"
	"strconv"

	"github.com/loopiify-next/internal/http/response"
	"github.com/loopiify-next/internal/service"
	"github.com/loopiify-next/internal/woocommerce"

	"github.com/gin-gonic/gin"
)

// GetStores 获取门店列表
func (h *Handler) GetStores(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	stores, total, err := h.StoreService.List(page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "门店列表获取失败", err)
		return
	}
	response.SuccessWithPage(c, stores, response.NewPagination(page, pageSize, total))
}

// GetStore 获取门店详情
func (h *Handler) GetStore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	store, err := h.StoreService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, response.CodeNotFound, "门店不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "门店获取失败", err)
		return
	}
	response.Success(c, store)
}

// CreateStore 创建门店
func (h *Handler) CreateStore(c *gin.Context) {
	var req service.StoreCreateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	store, err := h.StoreService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrIntervalNotAllowed) {
			respondError(c, response.CodeBadRequest, "群发间隔只支持 30 或 60 秒", nil)
			return
		}
		respondError(c, response.CodeInternal, "门店创建失败", err)
		return
	}
	// 回调密钥只在创建与轮换时返回一次
	response.Success(c, gin.H{
		"store":           store,
		"webhook_api_key": store.WebhookAPIKey,
	})
}

// UpdateStore 更新门店
func (h *Handler) UpdateStore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req service.StoreUpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	store, err := h.StoreService.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			respondError(c, response.CodeNotFound, "门店不存在", nil)
		case errors.Is(err, service.ErrIntervalNotAllowed):
			respondError(c, response.CodeBadRequest, "群发间隔只支持 30 或 60 秒", nil)
		default:
			respondError(c, response.CodeInternal, "门店更新失败", err)
		}
		return
	}
	response.Success(c, store)
}

// DeleteStore 删除门店
func (h *Handler) DeleteStore(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.StoreService.Delete(id); err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, response.CodeNotFound, "门店不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "门店删除失败", err)
		return
	}
	response.Success(c, nil)
}

// RotateStoreWebhookKey 轮换门店回调密钥
func (h *Handler) RotateStoreWebhookKey(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	store, err := h.StoreService.RotateWebhookKey(id)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			respondError(c, response.CodeNotFound, "门店不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "密钥轮换失败", err)
		return
	}
	response.Success(c, gin.H{"webhook_api_key": store.WebhookAPIKey})
}

// SyncStoreOrders 从 WooCommerce 拉取历史已完成订单重建顾客画像
func (h *Handler) SyncStoreOrders(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := h.SyncService.SyncStore(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreNotFound):
			respondError(c, response.CodeNotFound, "门店不存在", nil)
		case errors.Is(err, woocommerce.ErrCredentialsMissing):
			respondError(c, response.CodeBadRequest, "门店未配置 WooCommerce 凭证", nil)
		default:
			respondError(c, response.CodeInternal, "订单同步失败", err)
		}
		return
	}
	response.Success(c, result)
}
