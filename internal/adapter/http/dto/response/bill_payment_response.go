package response

import (
	"time"

	"orderflow/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type BillPaymentResponse struct {
	PaymentID   string          `json:"payment_id"`
	ID          string          `json:"id"`
	OrderID     string          `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Date        time.Time       `json:"date"`
	Status      string          `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromBillPayment(p entities.BillPayment) BillPaymentResponse {
	return BillPaymentResponse{
		PaymentID:    p.ID,
		ID:           p.ID,
		OrderID:      p.OrderID,
		Amount:       p.Amount,
		PaymentDate:  p.Date,
		Date:         p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.ProviderPayloadRaw),
		MPPayload:    p.ProviderPayload,
	}
}

func FromBillPayments(ps []entities.BillPayment) []BillPaymentResponse {
	out := make([]BillPaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromBillPayment(p))
	}
	return out
}
