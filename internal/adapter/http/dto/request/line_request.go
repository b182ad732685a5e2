package request

import (
	"errors"
	"strings"

	"orderflow/internal/domain/lifecycle"
	"orderflow/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAvailabilityStatus = errors.New("status must be available or unavailable")
)

type ShortageRequest struct {
	AvailableQty decimal.Decimal `json:"available_qty"`
	Note         string          `json:"note"`
}

// AvailabilityRequest records a supplier answer by hand, for deployments
// without a supplier queue.
type AvailabilityRequest struct {
	Status      string          `json:"status" binding:"required"`
	Qty         decimal.Decimal `json:"qty"`
	SupplierRef string          `json:"supplier_ref"`
}

func (r AvailabilityRequest) ToResponse() (lifecycle.AvailabilityResponse, error) {
	resp := lifecycle.AvailabilityResponse{Qty: r.Qty, SupplierRef: strings.TrimSpace(r.SupplierRef)}
	switch strings.ToLower(strings.TrimSpace(r.Status)) {
	case "available":
		resp.Available = true
	case "unavailable":
	default:
		return lifecycle.AvailabilityResponse{}, ErrInvalidAvailabilityStatus
	}
	return resp, nil
}

type ReissueRequest struct {
	SupplierRef string `json:"supplier_ref"`
}

type CheckedRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

type QuantityRequest struct {
	Qty decimal.Decimal `json:"qty"`
}

// ImageRequest carries the image bytes base64-encoded, as encoding/json does
// for []byte.
type ImageRequest struct {
	ContentType string `json:"content_type" binding:"required"`
	Data        []byte `json:"data" binding:"required"`
}

type SuggestionRequest struct {
	ProductRef string          `json:"product_ref" binding:"required"`
	Price      decimal.Decimal `json:"price"`
	Note       string          `json:"note"`
}

func (r SuggestionRequest) ToInput() usecase.SuggestionInput {
	return usecase.SuggestionInput{
		ProductRef: strings.TrimSpace(r.ProductRef),
		Price:      r.Price,
		Note:       r.Note,
	}
}
