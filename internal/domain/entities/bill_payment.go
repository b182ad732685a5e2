package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// BillPayment is a settlement of a billed order.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//
// Provider payload:
//   - ProviderPayloadRaw keeps the original body (JSON) for traceability/audit.
//   - ProviderPayload is an optional parsed representation, useful for querying/debugging.
type BillPayment struct {
	ID      string
	OrderID string
	Amount  decimal.Decimal
	Date    time.Time
	Status  PaymentStatus

	ProviderPayloadRaw json.RawMessage
	ProviderPayload    map[string]interface{}
}
