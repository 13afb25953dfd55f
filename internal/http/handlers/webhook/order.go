package webhook

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/loopiify-next/internal/http/handlers/shared"
	"github.com/loopiify-next/internal/http/response"
	"github.com/loopiify-next/internal/models"
	"github.com/loopiify-next/internal/service"
	"github.com/loopiify-next/internal/woocommerce"

	"github.com/gin-gonic/gin"
)

const apiKeyHeader = "X-API-Key"

// orderItemPayload 回调里的订单行
type orderItemPayload struct {
	Name     string       `json:"name"`
	Quantity int          `json:"quantity"`
	Total    models.Money `json:"total"`
}

// orderDetailPayload 回调里的订单信息
type orderDetailPayload struct {
	Total       models.Money          `json:"total"`
	Currency    string                `json:"currency"`
	DateCreated woocommerce.OrderTime `json:"date_created"`
	Items       []orderItemPayload    `json:"items"`
}

// orderPayload WooCommerce 插件回调载荷
type orderPayload struct {
	OrderID  json.Number                `json:"order_id" binding:"required"`
	Status   string                     `json:"status" binding:"required"`
	Customer service.OrderCustomerInput `json:"customer" binding:"required"`
	Order    orderDetailPayload         `json:"order" binding:"required"`
}

// HandleOrder 接收 WooCommerce 订单回调。
// 通过 X-API-Key 匹配门店；只有 completed 订单触发累计与跟进排期，
// 其余状态直接确认并忽略，避免插件端重试。
func (h *Handler) HandleOrder(c *gin.Context) {
	apiKey := strings.TrimSpace(c.GetHeader(apiKeyHeader))
	if apiKey == "" {
		response.Unauthorized(c, "缺少 API Key")
		return
	}

	store, err := h.StoreService.Authenticate(apiKey)
	if err != nil {
		if errors.Is(err, service.ErrWebhookKeyInvalid) {
			response.Unauthorized(c, "API Key 无效")
			return
		}
		shared.RespondError(c, response.CodeInternal, "门店校验失败", err)
		return
	}

	var payload orderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "回调参数错误", err)
		return
	}

	orderDate := payload.Order.DateCreated.Time
	if orderDate.IsZero() {
		orderDate = time.Now()
	}
	input := service.CompletedOrderInput{
		OrderID:   payload.OrderID.String(),
		Status:    payload.Status,
		Customer:  payload.Customer,
		Total:     payload.Order.Total,
		Currency:  payload.Order.Currency,
		OrderDate: orderDate,
	}

	result, err := h.AccrualService.ProcessOrder(c.Request.Context(), store, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderIgnored):
			response.SuccessWithMsg(c, "已忽略", gin.H{"order_id": input.OrderID, "status": payload.Status})
		case errors.Is(err, service.ErrPhoneMissing):
			shared.RespondError(c, response.CodeBadRequest, "顾客手机号缺失", err)
		default:
			shared.RespondError(c, response.CodeInternal, "订单处理失败", err)
		}
		return
	}

	// 累计成功后为顾客排期门店启用中的跟进流程，失败不影响回调结果
	if err := h.FollowupService.ScheduleFlows(store, result.Customer); err != nil {
		shared.RequestLog(c).Warnw("webhook_schedule_flows_failed",
			"store_id", store.ID,
			"customer_id", result.Customer.ID,
			"error", err,
		)
	}

	response.Success(c, result)
}
