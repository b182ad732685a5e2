package response

import (
	"orderflow/internal/domain/billing"

	"github.com/shopspring/decimal"
)

type BillLineResponse struct {
	LineID       string          `json:"line_id"`
	ProductRef   string          `json:"product_ref"`
	Flag         string          `json:"flag"`
	Rate         decimal.Decimal `json:"rate"`
	EffectiveQty decimal.Decimal `json:"effective_qty"`
	Estimated    decimal.Decimal `json:"estimated"`
	Final        decimal.Decimal `json:"final"`
	Counted      bool            `json:"counted"`
}

type BillResponse struct {
	OrderID        string             `json:"order_id"`
	FreightCharge  decimal.Decimal    `json:"freight_charge"`
	EstimatedTotal decimal.Decimal    `json:"estimated_total"`
	FinalTotal     decimal.Decimal    `json:"final_total"`
	IsBilled       bool               `json:"is_billed"`
	Lines          []BillLineResponse `json:"lines"`
}

func FromBill(b billing.Bill) BillResponse {
	res := BillResponse{
		OrderID:        b.OrderID,
		FreightCharge:  b.Freight,
		EstimatedTotal: b.EstimatedTotal,
		FinalTotal:     b.FinalTotal,
		IsBilled:       b.IsBilled,
		Lines:          make([]BillLineResponse, 0, len(b.Lines)),
	}
	for _, l := range b.Lines {
		res.Lines = append(res.Lines, BillLineResponse{
			LineID:       l.LineID,
			ProductRef:   l.ProductRef,
			Flag:         l.Flag.String(),
			Rate:         l.Rate,
			EffectiveQty: l.EffectiveQty,
			Estimated:    l.Estimated,
			Final:        l.Final,
			Counted:      l.Counted,
		})
	}
	return res
}

type RunningTotalResponse struct {
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}
