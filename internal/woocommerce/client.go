package woocommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/loopiify-next/internal/config"
)

// ErrCredentialsMissing 门店未配置 WooCommerce 凭证
var ErrCredentialsMissing = errors.New("woocommerce credentials missing")

const (
	ordersEndpoint  = "/wp-json/wc/v3/orders"
	defaultPageSize = 100
)

// Credentials 单个门店的 WooCommerce REST 凭证
type Credentials struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
}

// Billing 订单账单信息
type Billing struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
}

// OrderTime WooCommerce 时间字段，GMT 字段不带时区后缀
type OrderTime struct {
	time.Time
}

// UnmarshalJSON 解析 "2006-01-02T15:04:05" 格式，按 UTC 处理
func (t *OrderTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.UTC)
	if err != nil {
		// 兼容带时区的标准格式
		parsed, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return err
		}
	}
	t.Time = parsed
	return nil
}

// Order WooCommerce 订单
type Order struct {
	ID          int64     `json:"id"`
	Status      string    `json:"status"`
	Total       string    `json:"total"`
	Currency    string    `json:"currency"`
	DateCreated OrderTime `json:"date_created_gmt"`
	Billing     Billing   `json:"billing"`
}

// OrderLister 分页拉取订单的接口
type OrderLister interface {
	ListCompletedOrders(ctx context.Context, creds Credentials, page int) ([]Order, error)
	PageSize() int
}

// Client WooCommerce REST API 客户端
type Client struct {
	httpClient *http.Client
	pageSize   int
}

// NewClient 创建 WooCommerce 客户端
func NewClient(cfg *config.WooCommerceConfig) *Client {
	pageSize := defaultPageSize
	timeout := 30 * time.Second
	if cfg != nil {
		if cfg.PageSize > 0 {
			pageSize = cfg.PageSize
		}
		if cfg.TimeoutMS > 0 {
			timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
		}
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		pageSize:   pageSize,
	}
}

// PageSize 返回每页拉取条数
func (c *Client) PageSize() int {
	return c.pageSize
}

// ListCompletedOrders 拉取一页已完成订单，page 从 1 开始。
// 凭证以查询参数方式传递，WooCommerce 对 HTTPS 站点支持这种认证。
func (c *Client) ListCompletedOrders(ctx context.Context, creds Credentials, page int) ([]Order, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(creds.BaseURL), "/")
	if baseURL == "" || strings.TrimSpace(creds.ConsumerKey) == "" || strings.TrimSpace(creds.ConsumerSecret) == "" {
		return nil, ErrCredentialsMissing
	}
	if page < 1 {
		page = 1
	}

	values := url.Values{}
	values.Set("consumer_key", creds.ConsumerKey)
	values.Set("consumer_secret", creds.ConsumerSecret)
	values.Set("status", "completed")
	values.Set("orderby", "date")
	values.Set("order", "asc")
	values.Set("per_page", strconv.Itoa(c.pageSize))
	values.Set("page", strconv.Itoa(page))

	endpoint := baseURL + ordersEndpoint + "?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("woocommerce http status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var orders []Order
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		return nil, err
	}
	return orders, nil
}
