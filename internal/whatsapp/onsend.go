package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/loopiify-next/internal/config"
	"github.com/loopiify-next/internal/constants"
)

// ErrAPIKeyMissing 门店未配置 OnSend API Key
var ErrAPIKeyMissing = errors.New("onsend api key missing")

const defaultAPIURL = "https://onsend.io/api/v1/send"

// Message OnSend 发送请求体
type Message struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	URL         string `json:"url,omitempty"`
	MimeType    string `json:"mimetype,omitempty"`
	Filename    string `json:"filename,omitempty"`
}

// Sender WhatsApp 发送接口
type Sender interface {
	Send(ctx context.Context, apiKey string, msg Message) error
}

// OnSendClient OnSend API 客户端
type OnSendClient struct {
	apiURL     string
	httpClient *http.Client
}

// NewOnSendClient 创建 OnSend 客户端
func NewOnSendClient(cfg *config.WhatsAppConfig) *OnSendClient {
	apiURL := defaultAPIURL
	timeout := 15 * time.Second
	if cfg != nil {
		if u := strings.TrimSpace(cfg.APIURL); u != "" {
			apiURL = u
		}
		if cfg.TimeoutMS > 0 {
			timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
		}
	}
	return &OnSendClient{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send 发送一条 WhatsApp 消息，apiKey 为门店各自的 OnSend 密钥
func (c *OnSendClient) Send(ctx context.Context, apiKey string, msg Message) error {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return ErrAPIKeyMissing
	}
	if strings.TrimSpace(msg.Type) == "" {
		msg.Type = constants.MessageTypeText
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("onsend http status %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return nil
}

// NormalizePhone 归一化手机号为纯数字国际格式。
// 去掉全部非数字字符，马来西亚本地号前导 0 换成 60。
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if strings.HasPrefix(digits, "0") {
		digits = "60" + digits[1:]
	}
	return digits
}
