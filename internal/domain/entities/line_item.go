package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxLineImages bounds the evidence images a checker can attach to a line.
const MaxLineImages = 3

// SupplierStatus tracks the latest supplier round trip for a shortage line.
type SupplierStatus string

const (
	SupplierNone        SupplierStatus = ""
	SupplierPending     SupplierStatus = "pending"
	SupplierAvailable   SupplierStatus = "available"
	SupplierUnavailable SupplierStatus = "unavailable"
)

// SupplierState is the last shortage query and its answer.
type SupplierState struct {
	SupplierRef string
	Status      SupplierStatus
	OfferedQty  decimal.Decimal
	RequestedAt time.Time
	RespondedAt time.Time
}

// Image is opaque evidence attached during checker review.
type Image struct {
	ID          string
	ContentType string
	Data        []byte
	AttachedBy  string
	AttachedAt  time.Time
}

// Suggestion is a substitute-product proposal. Suggestions are never edited:
// they are either accepted (turned into a replacement line) or discarded.
type Suggestion struct {
	ID                 string
	OwnerLineID        string
	ProposedProductRef string
	Price              decimal.Decimal
	Note               string
	ProposedBy         string
	CreatedAt          time.Time
}

// LineItem is one product on an order.
//
// Replacement links are lookups by id in both directions; neither line owns the other.
type LineItem struct {
	ID               string
	OrderID          string
	ProductRef       string
	OrderedQty       decimal.Decimal
	AvailableQty     decimal.Decimal
	Rate             decimal.Decimal
	Flag             FulfillmentFlag
	Note             string
	Narration        string
	IsChecked        bool
	EstimatedQty     decimal.Decimal
	EstimatedTotal   decimal.Decimal
	EstimatedAt      time.Time
	Images           []Image
	Suggestions      []Suggestion
	ReplacesLineID   string
	ReplacedByLineID string
	DecisionOwner    ActorRef
	Supplier         SupplierState
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasEstimate reports whether the estimated-bill snapshot was already taken.
func (l LineItem) HasEstimate() bool {
	return !l.EstimatedAt.IsZero()
}

// IsLive is false for lines removed from the order by replacement or cancellation.
func (l LineItem) IsLive() bool {
	return !l.Flag.IsSideState()
}

// Countable lines must be resolved before the order can complete.
func (l LineItem) Countable() bool {
	if l.Flag.IsSideState() {
		return false
	}
	if l.Flag.AtMost(FlagInStock) {
		return true
	}
	return l.AvailableQty.IsPositive()
}

// EffectiveQty is the quantity the final bill charges for.
func (l LineItem) EffectiveQty() decimal.Decimal {
	if l.Flag.IsShortage() {
		return l.AvailableQty
	}
	return l.OrderedQty
}

// Clone returns a deep copy so callers can mutate it without aliasing slices.
func (l LineItem) Clone() LineItem {
	out := l
	if l.Images != nil {
		out.Images = make([]Image, len(l.Images))
		for i, img := range l.Images {
			img.Data = append([]byte(nil), img.Data...)
			out.Images[i] = img
		}
	}
	if l.Suggestions != nil {
		out.Suggestions = append([]Suggestion(nil), l.Suggestions...)
	}
	return out
}

// CloneLines deep-copies a slice of lines.
func CloneLines(lines []LineItem) []LineItem {
	if lines == nil {
		return nil
	}
	out := make([]LineItem, len(lines))
	for i, l := range lines {
		out[i] = l.Clone()
	}
	return out
}
