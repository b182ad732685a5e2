package response

import (
	"time"

	"orderflow/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ImageResponse omits the bytes; images are evidence, not content to re-serve.
type ImageResponse struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	AttachedBy  string    `json:"attached_by"`
	AttachedAt  time.Time `json:"attached_at"`
}

func FromImage(img entities.Image) ImageResponse {
	return ImageResponse{
		ID:          img.ID,
		ContentType: img.ContentType,
		Size:        len(img.Data),
		AttachedBy:  img.AttachedBy,
		AttachedAt:  img.AttachedAt,
	}
}

type SuggestionResponse struct {
	ID                 string          `json:"id"`
	OwnerLineID        string          `json:"owner_line_id"`
	ProposedProductRef string          `json:"proposed_product_ref"`
	Price              decimal.Decimal `json:"price"`
	Note               string          `json:"note,omitempty"`
	ProposedBy         string          `json:"proposed_by"`
	CreatedAt          time.Time       `json:"created_at"`
}

func FromSuggestion(s entities.Suggestion) SuggestionResponse {
	return SuggestionResponse{
		ID:                 s.ID,
		OwnerLineID:        s.OwnerLineID,
		ProposedProductRef: s.ProposedProductRef,
		Price:              s.Price,
		Note:               s.Note,
		ProposedBy:         s.ProposedBy,
		CreatedAt:          s.CreatedAt,
	}
}

type SupplierResponse struct {
	SupplierRef string          `json:"supplier_ref,omitempty"`
	Status      string          `json:"status"`
	OfferedQty  decimal.Decimal `json:"offered_qty"`
	RequestedAt time.Time       `json:"requested_at"`
	RespondedAt *time.Time      `json:"responded_at,omitempty"`
}

type LineResponse struct {
	ID               string               `json:"id"`
	OrderID          string               `json:"order_id"`
	ProductRef       string               `json:"product_ref"`
	OrderedQty       decimal.Decimal      `json:"ordered_qty"`
	AvailableQty     decimal.Decimal      `json:"available_qty"`
	Rate             decimal.Decimal      `json:"rate"`
	Flag             string               `json:"flag"`
	Note             string               `json:"note,omitempty"`
	Narration        string               `json:"narration,omitempty"`
	IsChecked        bool                 `json:"is_checked"`
	EstimatedQty     *decimal.Decimal     `json:"estimated_qty,omitempty"`
	EstimatedTotal   *decimal.Decimal     `json:"estimated_total,omitempty"`
	Images           []ImageResponse      `json:"images"`
	Suggestions      []SuggestionResponse `json:"suggestions"`
	ReplacesLineID   string               `json:"replaces_line_id,omitempty"`
	ReplacedByLineID string               `json:"replaced_by_line_id,omitempty"`
	DecisionOwner    string               `json:"decision_owner,omitempty"`
	Supplier         *SupplierResponse    `json:"supplier,omitempty"`
	Version          int64                `json:"version"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

func FromLine(l entities.LineItem) LineResponse {
	res := LineResponse{
		ID:               l.ID,
		OrderID:          l.OrderID,
		ProductRef:       l.ProductRef,
		OrderedQty:       l.OrderedQty,
		AvailableQty:     l.AvailableQty,
		Rate:             l.Rate,
		Flag:             l.Flag.String(),
		Note:             l.Note,
		Narration:        l.Narration,
		IsChecked:        l.IsChecked,
		Images:           make([]ImageResponse, 0, len(l.Images)),
		Suggestions:      make([]SuggestionResponse, 0, len(l.Suggestions)),
		ReplacesLineID:   l.ReplacesLineID,
		ReplacedByLineID: l.ReplacedByLineID,
		DecisionOwner:    l.DecisionOwner.String(),
		Version:          l.Version,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
	if l.HasEstimate() {
		qty, total := l.EstimatedQty, l.EstimatedTotal
		res.EstimatedQty = &qty
		res.EstimatedTotal = &total
	}
	for _, img := range l.Images {
		res.Images = append(res.Images, FromImage(img))
	}
	for _, s := range l.Suggestions {
		res.Suggestions = append(res.Suggestions, FromSuggestion(s))
	}
	if l.Supplier.Status != entities.SupplierNone {
		sup := &SupplierResponse{
			SupplierRef: l.Supplier.SupplierRef,
			Status:      string(l.Supplier.Status),
			OfferedQty:  l.Supplier.OfferedQty,
			RequestedAt: l.Supplier.RequestedAt,
		}
		if !l.Supplier.RespondedAt.IsZero() {
			at := l.Supplier.RespondedAt
			sup.RespondedAt = &at
		}
		res.Supplier = sup
	}
	return res
}

func FromLines(lines []entities.LineItem) []LineResponse {
	out := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, FromLine(l))
	}
	return out
}

// AcceptSuggestionResponse returns the replaced line and its replacement.
type AcceptSuggestionResponse struct {
	Replaced    LineResponse `json:"replaced"`
	Replacement LineResponse `json:"replacement"`
}
