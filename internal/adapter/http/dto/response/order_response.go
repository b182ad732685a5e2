package response

import (
	"time"

	"orderflow/internal/domain/entities"
	"orderflow/internal/domain/lifecycle"
	"orderflow/internal/usecase"

	"github.com/shopspring/decimal"
)

type SlotResponse struct {
	ActorID string    `json:"actor_id"`
	Since   time.Time `json:"since"`
}

func fromSlot(ref entities.ActorRef) *SlotResponse {
	id, ok := ref.ID()
	if !ok {
		return nil
	}
	return &SlotResponse{ActorID: id, Since: ref.Since()}
}

type OrderResponse struct {
	ID            string          `json:"id"`
	ApprovalFlag  string          `json:"approval_flag"`
	Salesman      *SlotResponse   `json:"salesman,omitempty"`
	Storekeeper   *SlotResponse   `json:"storekeeper,omitempty"`
	Checker       *SlotResponse   `json:"checker,omitempty"`
	Biller        *SlotResponse   `json:"biller,omitempty"`
	IsBilled      bool            `json:"is_billed"`
	FreightCharge decimal.Decimal `json:"freight_charge"`
	Note          string          `json:"note,omitempty"`
	Version       int64           `json:"version"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		ApprovalFlag:  string(o.ApprovalFlag),
		Salesman:      fromSlot(o.Salesman),
		Storekeeper:   fromSlot(o.Storekeeper),
		Checker:       fromSlot(o.Checker),
		Biller:        fromSlot(o.Biller),
		IsBilled:      o.IsBilled,
		FreightCharge: o.FreightCharge,
		Note:          o.Note,
		Version:       o.Version,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

type CreateOrderResponse struct {
	Order OrderResponse  `json:"order"`
	Lines []LineResponse `json:"lines"`
}

func FromCreatedOrder(o entities.Order, lines []entities.LineItem) CreateOrderResponse {
	return CreateOrderResponse{Order: FromOrder(o), Lines: FromLines(lines)}
}

type ClaimResponse struct {
	Resource  string    `json:"resource"`
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	ActorID   string    `json:"actor_id"`
	ClaimedAt time.Time `json:"claimed_at"`
}

func FromClaimToken(t entities.ClaimToken) ClaimResponse {
	return ClaimResponse{
		Resource:  string(t.Resource.Kind),
		ID:        t.Resource.ID,
		Role:      string(t.Role),
		ActorID:   t.ActorID,
		ClaimedAt: t.ClaimedAt,
	}
}

// DispatchResponse reports both legs of a biller-and-checker dispatch. Each
// error is empty when its leg succeeded.
type DispatchResponse struct {
	Order       OrderResponse `json:"order"`
	CheckerSent bool          `json:"checker_sent"`
	CheckerErr  string        `json:"checker_error,omitempty"`
	BillerSent  bool          `json:"biller_sent"`
	BillerErr   string        `json:"biller_error,omitempty"`
}

func FromDispatch(r usecase.DispatchResult) DispatchResponse {
	res := DispatchResponse{Order: FromOrder(r.Order), CheckerSent: r.CheckerErr == nil, BillerSent: r.BillerErr == nil}
	if r.CheckerErr != nil {
		res.CheckerErr = r.CheckerErr.Error()
	}
	if r.BillerErr != nil {
		res.BillerErr = r.BillerErr.Error()
	}
	return res
}

type DisplayItemResponse struct {
	Line     LineResponse  `json:"line"`
	Original *LineResponse `json:"original,omitempty"`
}

func FromDisplayItems(items []lifecycle.DisplayItem) []DisplayItemResponse {
	out := make([]DisplayItemResponse, 0, len(items))
	for _, it := range items {
		d := DisplayItemResponse{Line: FromLine(it.Line)}
		if it.Original != nil {
			orig := FromLine(*it.Original)
			d.Original = &orig
		}
		out = append(out, d)
	}
	return out
}
