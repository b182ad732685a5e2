package request

import (
	"strings"

	"orderflow/internal/domain/lifecycle"
	"orderflow/internal/usecase"

	"github.com/shopspring/decimal"
)

// LineRequest accepts quantities and rates as JSON numbers or strings.
type LineRequest struct {
	ProductRef string          `json:"product_ref" binding:"required"`
	Qty        decimal.Decimal `json:"qty"`
	Rate       decimal.Decimal `json:"rate"`
	Note       string          `json:"note"`
}

func (r LineRequest) ToInput() usecase.LineInput {
	return usecase.LineInput{
		ProductRef: strings.TrimSpace(r.ProductRef),
		Qty:        r.Qty,
		Rate:       r.Rate,
		Note:       r.Note,
	}
}

type CreateOrderRequest struct {
	FreightCharge decimal.Decimal `json:"freight_charge"`
	Note          string          `json:"note"`
	Lines         []LineRequest   `json:"lines" binding:"dive"`
}

func (r CreateOrderRequest) ToInput() usecase.CreateOrderInput {
	in := usecase.CreateOrderInput{Freight: r.FreightCharge, Note: r.Note}
	for _, l := range r.Lines {
		in.Lines = append(in.Lines, l.ToInput())
	}
	return in
}

// BillerRequest names the biller for dispatch and assignment. An empty biller
// leaves the slot for the biller pool to claim.
type BillerRequest struct {
	BillerID string `json:"biller_id"`
}

func (r BillerRequest) ResolveBillerID() string {
	return strings.TrimSpace(r.BillerID)
}

// CheckReportRequest carries the checker's ticks and edited quantities keyed
// by line id. The running-total route takes the same shape.
type CheckReportRequest struct {
	Checked map[string]bool            `json:"checked"`
	Edited  map[string]decimal.Decimal `json:"edited"`
}

func (r CheckReportRequest) ToReport() lifecycle.CheckReport {
	report := lifecycle.CheckReport{
		Checked: make(map[string]bool, len(r.Checked)),
		Edited:  make(map[string]decimal.Decimal, len(r.Edited)),
	}
	for id, v := range r.Checked {
		report.Checked[strings.TrimSpace(id)] = v
	}
	for id, v := range r.Edited {
		report.Edited[strings.TrimSpace(id)] = v
	}
	return report
}
