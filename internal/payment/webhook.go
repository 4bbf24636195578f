package payment

// webhook事件类型
const (
	WebhookPaymentCompleted     = "payment.completed"
	WebhookRefundIssued         = "refund.issued"
	WebhookPayoutAccountUpdated = "payout_account.updated"
	WebhookTransferCreated      = "transfer.created"
)

// WebhookEvent 服务商推送的事件
type WebhookEvent struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Data WebhookData `json:"data"`
}

// WebhookData 事件负载
type WebhookData struct {
	PaymentID   string            `json:"payment_id"`
	AccountID   string            `json:"account_id"`
	TransferID  string            `json:"transfer_id"`
	Status      string            `json:"status"`
	GrossAmount int64             `json:"gross_amount"`
	Metadata    map[string]string `json:"metadata"` // checkout时嵌入的不透明数据
}
