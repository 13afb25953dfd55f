package webhook

import (
	"github.com/loopiify-next/internal/provider"
)

// Handler WooCommerce 回调处理器
type Handler struct {
	*provider.Container
}

// New 创建回调处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
