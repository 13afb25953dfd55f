package admin

import (
	"errors"

	"github.com/loopiify-next/internal/http/response"
	"github.com/loopiify-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetActiveProgram 获取门店当前生效的会员计划
func (h *Handler) GetActiveProgram(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	program, err := h.LoyaltyService.ActiveProgram(storeID)
	if err != nil {
		respondError(c, response.CodeInternal, "会员计划获取失败", err)
		return
	}
	response.Success(c, program)
}

// GetStampCards 获取门店印花卡计划列表
func (h *Handler) GetStampCards(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	cards, err := h.LoyaltyService.ListStampCards(storeID)
	if err != nil {
		respondError(c, response.CodeInternal, "印花卡计划获取失败", err)
		return
	}
	response.Success(c, cards)
}

// GetPointsConfigs 获取门店积分计划列表
func (h *Handler) GetPointsConfigs(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	configs, err := h.LoyaltyService.ListPointsConfigs(storeID)
	if err != nil {
		respondError(c, response.CodeInternal, "积分计划获取失败", err)
		return
	}
	response.Success(c, configs)
}

// CreateStampCard 创建印花卡计划
func (h *Handler) CreateStampCard(c *gin.Context) {
	var req service.StampCardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	card, err := h.LoyaltyService.CreateStampCard(req)
	if err != nil {
		if errors.Is(err, service.ErrProgramConfigInvalid) {
			respondError(c, response.CodeBadRequest, "印花卡计划参数不合法", err)
			return
		}
		respondError(c, response.CodeInternal, "印花卡计划创建失败", err)
		return
	}
	response.Success(c, card)
}

// CreatePointsConfig 创建积分计划
func (h *Handler) CreatePointsConfig(c *gin.Context) {
	var req service.PointsConfigInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	config, err := h.LoyaltyService.CreatePointsConfig(req)
	if err != nil {
		if errors.Is(err, service.ErrProgramConfigInvalid) {
			respondError(c, response.CodeBadRequest, "积分计划参数不合法", err)
			return
		}
		respondError(c, response.CodeInternal, "积分计划创建失败", err)
		return
	}
	response.Success(c, config)
}

// ActivateStampCard 启用印花卡计划，同门店其余计划自动停用
func (h *Handler) ActivateStampCard(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	programID, ok := paramID(c, "program_id")
	if !ok {
		return
	}
	if err := h.LoyaltyService.ActivateStampCard(storeID, programID); err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			respondError(c, response.CodeNotFound, "印花卡计划不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "印花卡计划启用失败", err)
		return
	}
	response.Success(c, nil)
}

// ActivatePointsConfig 启用积分计划，同门店其余计划自动停用
func (h *Handler) ActivatePointsConfig(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	programID, ok := paramID(c, "program_id")
	if !ok {
		return
	}
	if err := h.LoyaltyService.ActivatePointsConfig(storeID, programID); err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			respondError(c, response.CodeNotFound, "积分计划不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "积分计划启用失败", err)
		return
	}
	response.Success(c, nil)
}

// DeactivatePrograms 停用门店全部会员计划
func (h *Handler) DeactivatePrograms(c *gin.Context) {
	storeID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.LoyaltyService.DeactivatePrograms(storeID); err != nil {
		respondError(c, response.CodeInternal, "会员计划停用失败", err)
		return
	}
	response.Success(c, nil)
}
