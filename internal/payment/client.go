package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/blues/gms/internal/config"
)

// Processor 支付服务商接口，便于测试替换
type Processor interface {
	CreateSplitPayment(ctx context.Context, req *SplitPaymentRequest) (*SplitPaymentSession, error)
	CreatePayoutAccount(ctx context.Context, req *PayoutAccountRequest) (*PayoutAccount, error)
	GetPayoutAccount(ctx context.Context, accountID string) (*PayoutAccount, error)
}

// Client 支付服务商HTTP客户端
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// SplitPaymentRequest 分账支付请求
type SplitPaymentRequest struct {
	CreationID       uint              `json:"creation_id"`
	GrossAmount      int64             `json:"gross_amount"`       // 总金额（分）
	BuilderAmount    int64             `json:"builder_amount"`     // 直接路由到建造者收款账户
	NetworkAmount    int64             `json:"network_amount"`     // 平台留存
	PayoutAccountID  string            `json:"payout_account_id"`  // 建造者收款账户
	Metadata         map[string]string `json:"metadata"`           // 回传到webhook的不透明数据
}

// SplitPaymentSession 分账支付会话
type SplitPaymentSession struct {
	SessionID   string `json:"session_id"`
	PaymentID   string `json:"payment_id"`
	RedirectURL string `json:"redirect_url"`
}

// PayoutAccountRequest 开通收款账户请求
type PayoutAccountRequest struct {
	FoundationID uint   `json:"foundation_id"`
	Email        string `json:"email"`
	Country      string `json:"country"`
}

// PayoutAccount 收款账户
type PayoutAccount struct {
	AccountID     string `json:"account_id"`
	Status        string `json:"status"` // pending, active, restricted
	OnboardingURL string `json:"onboarding_url"`
}

func Init(cfg config.PaymentConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateSplitPayment 创建分账支付会话，建造者份额直接路由到其收款账户
func (c *Client) CreateSplitPayment(ctx context.Context, req *SplitPaymentRequest) (*SplitPaymentSession, error) {
	var session SplitPaymentSession
	if err := c.post(ctx, "/v1/split_payments", req, &session); err != nil {
		return nil, fmt.Errorf("failed to create split payment: %w", err)
	}
	return &session, nil
}

// CreatePayoutAccount 为建造者开通收款账户，返回onboarding链接
func (c *Client) CreatePayoutAccount(ctx context.Context, req *PayoutAccountRequest) (*PayoutAccount, error) {
	var account PayoutAccount
	if err := c.post(ctx, "/v1/payout_accounts", req, &account); err != nil {
		return nil, fmt.Errorf("failed to create payout account: %w", err)
	}
	return &account, nil
}

// GetPayoutAccount 查询收款账户状态
func (c *Client) GetPayoutAccount(ctx context.Context, accountID string) (*PayoutAccount, error) {
	var account PayoutAccount
	if err := c.get(ctx, "/v1/payout_accounts/"+accountID, &account); err != nil {
		return nil, fmt.Errorf("failed to get payout account: %w", err)
	}
	return &account, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("processor returned status %d: %s", resp.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
