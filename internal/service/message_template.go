package service

import (
	"strings"

	"github.com/loopiify-next/internal/models"
)

// DefaultWinnerMessage 未配置中奖消息模板时的默认文案
const DefaultWinnerMessage = "Congratulations {first_name}! You've won {prize_name} in our lucky draw!"

// RenderMessageTemplate 渲染消息模板，占位符为 {first_name} 这种小写下划线形式。
// 未提供的占位符原样保留。
func RenderMessageTemplate(template string, vars map[string]string) string {
	if template == "" {
		return ""
	}
	pairs := make([]string, 0, len(vars)*2)
	for key, value := range vars {
		pairs = append(pairs, "{"+key+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// CustomerTemplateVars 顾客相关的模板变量
func CustomerTemplateVars(customer *models.Customer) map[string]string {
	if customer == nil {
		return map[string]string{}
	}
	return map[string]string{
		"first_name": customer.FirstName,
		"last_name":  customer.LastName,
		"phone":      customer.Phone,
	}
}
