package response

import (
	"errors"
	"testing"
	"time"

	"orderflow/internal/domain/billing"
	"orderflow/internal/domain/entities"
	"orderflow/internal/domain/lifecycle"
	"orderflow/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromOrder(t *testing.T) {
	now := time.Now().UTC()
	o := entities.Order{
		ID:            "o-1",
		ApprovalFlag:  entities.ApprovalSentToStorekeeper,
		Salesman:      entities.AssignedTo("s-1", now),
		Storekeeper:   entities.AssignedTo("k-1", now),
		FreightCharge: decimal.NewFromInt(5),
		Version:       3,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	res := FromOrder(o)
	if res.ID != "o-1" || res.ApprovalFlag != "sentToStorekeeper" || res.Version != 3 {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.Salesman == nil || res.Salesman.ActorID != "s-1" || res.Storekeeper == nil || res.Storekeeper.ActorID != "k-1" {
		t.Fatalf("unexpected slots: %+v", res)
	}
	if res.Checker != nil || res.Biller != nil {
		t.Fatalf("unassigned slots should be omitted: %+v", res)
	}
}

func TestFromLine(t *testing.T) {
	now := time.Now().UTC()
	l := entities.LineItem{
		ID:             "l-1",
		OrderID:        "o-1",
		ProductRef:     "SKU-1",
		OrderedQty:     decimal.NewFromInt(2),
		Rate:           decimal.NewFromInt(10),
		Flag:           entities.FlagReported,
		EstimatedQty:   decimal.NewFromInt(2),
		EstimatedTotal: decimal.NewFromInt(20),
		EstimatedAt:    now,
		Images:         []entities.Image{{ID: "img-1", ContentType: "image/png", Data: []byte{1, 2, 3}}},
		Suggestions:    []entities.Suggestion{{ID: "sg-1", ProposedProductRef: "SKU-2", Price: decimal.NewFromInt(9)}},
		DecisionOwner:  entities.AssignedTo("adm", now),
		Supplier:       entities.SupplierState{Status: entities.SupplierPending, RequestedAt: now},
	}

	res := FromLine(l)
	if res.Flag != "reported" || res.DecisionOwner != "adm" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.EstimatedTotal == nil || !res.EstimatedTotal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("estimate should be present: %+v", res.EstimatedTotal)
	}
	if len(res.Images) != 1 || res.Images[0].Size != 3 {
		t.Fatalf("unexpected images: %+v", res.Images)
	}
	if len(res.Suggestions) != 1 || res.Suggestions[0].ProposedProductRef != "SKU-2" {
		t.Fatalf("unexpected suggestions: %+v", res.Suggestions)
	}
	if res.Supplier == nil || res.Supplier.Status != "pending" || res.Supplier.RespondedAt != nil {
		t.Fatalf("unexpected supplier: %+v", res.Supplier)
	}

	bare := FromLine(entities.LineItem{ID: "l-2", Flag: entities.FlagNewItem})
	if bare.EstimatedQty != nil || bare.Supplier != nil || bare.Images == nil || bare.Suggestions == nil {
		t.Fatalf("unexpected bare line: %+v", bare)
	}
}

func TestFromDispatch(t *testing.T) {
	res := FromDispatch(usecase.DispatchResult{
		Order:     entities.Order{ID: "o-1"},
		BillerErr: errors.New("order o-1 already claimed as biller by b-2"),
	})
	if !res.CheckerSent || res.CheckerErr != "" {
		t.Fatalf("checker leg should be sent: %+v", res)
	}
	if res.BillerSent || res.BillerErr == "" {
		t.Fatalf("biller leg should report its error: %+v", res)
	}
}

func TestFromDisplayItems(t *testing.T) {
	orig := entities.LineItem{ID: "l-1", Flag: entities.FlagReplaced}
	items := []lifecycle.DisplayItem{
		{Line: entities.LineItem{ID: "l-2", ReplacesLineID: "l-1"}, Original: &orig},
		{Line: entities.LineItem{ID: "l-3"}},
	}
	res := FromDisplayItems(items)
	if len(res) != 2 || res[0].Original == nil || res[0].Original.ID != "l-1" || res[1].Original != nil {
		t.Fatalf("unexpected display items: %+v", res)
	}
}

func TestFromBill(t *testing.T) {
	b := billing.Bill{
		OrderID:        "o-1",
		Freight:        decimal.NewFromInt(5),
		EstimatedTotal: decimal.NewFromInt(35),
		FinalTotal:     decimal.RequireFromString("32.5"),
		Lines: []billing.LineBreakdown{
			{LineID: "l-1", Flag: entities.FlagInStock, Final: decimal.NewFromInt(20), Counted: true},
		},
	}
	res := FromBill(b)
	if res.OrderID != "o-1" || !res.FinalTotal.Equal(decimal.RequireFromString("32.5")) {
		t.Fatalf("unexpected bill: %+v", res)
	}
	if len(res.Lines) != 1 || res.Lines[0].Flag != "inStock" || !res.Lines[0].Counted {
		t.Fatalf("unexpected lines: %+v", res.Lines)
	}
}

func TestFromClaimToken(t *testing.T) {
	now := time.Now().UTC()
	res := FromClaimToken(entities.ClaimToken{
		Resource:  entities.ClaimResource{Kind: entities.ClaimOrder, ID: "o-1"},
		Role:      entities.RoleChecker,
		ActorID:   "c-1",
		ClaimedAt: now,
	})
	if res.Resource != "order" || res.ID != "o-1" || res.Role != "checker" || res.ActorID != "c-1" || !res.ClaimedAt.Equal(now) {
		t.Fatalf("unexpected claim: %+v", res)
	}
}
