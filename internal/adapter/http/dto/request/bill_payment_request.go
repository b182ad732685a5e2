package request

import "encoding/json"

// BillPaymentCreateRequest is the payload for the collect-payment route.
//
// `mp_payload` is stored as-is (raw JSON) to support varying Mercado Pago schemas.
// The amount is never read from it; the billed order's final total is charged.

type BillPaymentCreateRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
