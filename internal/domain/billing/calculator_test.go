package billing

import (
	"testing"
	"time"

	"orderflow/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(id string, flag entities.FulfillmentFlag, ordered, available, rate string) entities.LineItem {
	return entities.LineItem{
		ID:           id,
		OrderID:      "o-1",
		ProductRef:   "sku-" + id,
		OrderedQty:   d(ordered),
		AvailableQty: d(available),
		Rate:         d(rate),
		Flag:         flag,
	}
}

func TestQtyChanged(t *testing.T) {
	cases := []struct {
		name       string
		prev, next string
		want       bool
	}{
		{name: "identical", prev: "5", next: "5", want: false},
		{name: "float noise", prev: "5", next: "5.00009", want: false},
		{name: "at threshold", prev: "5", next: "5.0001", want: true},
		{name: "decrease", prev: "5", next: "4", want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := QtyChanged(d(tc.prev), d(tc.next)); got != tc.want {
				t.Fatalf("QtyChanged(%s, %s) = %v, want %v", tc.prev, tc.next, got, tc.want)
			}
		})
	}
}

func TestFinalTotal(t *testing.T) {
	t.Run("accepted shortage uses available qty", func(t *testing.T) {
		short := line("l1", entities.FlagAvailable, "10", "4", "5")
		full := line("l2", entities.FlagInStock, "10", "0", "5")
		got := FinalTotal([]entities.LineItem{short, full}, d("7.5"))
		if !got.Equal(d("77.5")) {
			t.Fatalf("expected 77.5, got %s", got)
		}
	})

	t.Run("replaced original not double counted", func(t *testing.T) {
		orig := line("l1", entities.FlagReplaced, "10", "3", "5")
		orig.ReplacedByLineID = "l2"
		repl := line("l2", entities.FlagNewItem, "10", "0", "6")
		repl.ReplacesLineID = "l1"
		got := FinalTotal([]entities.LineItem{orig, repl}, decimal.Zero)
		if !got.Equal(d("60")) {
			t.Fatalf("expected 60, got %s", got)
		}
	})

	t.Run("unavailable and cancelled lines excluded", func(t *testing.T) {
		lines := []entities.LineItem{
			line("l1", entities.FlagNotAvailable, "10", "0", "5"),
			line("l2", entities.FlagCancelled, "2", "0", "5"),
			line("l3", entities.FlagOutOfStock, "3", "0", "5"),
			line("l4", entities.FlagInStock, "1", "0", "0.333"),
		}
		got := FinalTotal(lines, decimal.Zero)
		if !got.Equal(d("0.333")) {
			t.Fatalf("expected 0.333, got %s", got)
		}
		if !Round(got).Equal(d("0.33")) {
			t.Fatalf("expected rounded 0.33, got %s", Round(got))
		}
	})
}

func TestEstimatedTotal(t *testing.T) {
	frozen := line("l1", entities.FlagInStock, "10", "0", "5")
	frozen.EstimatedQty = d("10")
	frozen.EstimatedTotal = d("50")

	qtyOnly := line("l2", entities.FlagInStock, "2", "0", "3")
	qtyOnly.EstimatedQty = d("2")

	none := line("l3", entities.FlagInStock, "9", "0", "9")

	got := EstimatedTotal([]entities.LineItem{frozen, qtyOnly, none}, d("1"))
	if !got.Equal(d("57")) {
		t.Fatalf("expected 57, got %s", got)
	}

	t.Run("replaced original estimated once", func(t *testing.T) {
		orig := line("l1", entities.FlagReplaced, "10", "0", "5")
		orig.EstimatedQty = d("10")
		orig.EstimatedTotal = d("50")
		orig.ReplacedByLineID = "l2"
		repl := line("l2", entities.FlagInStock, "10", "0", "6")
		repl.EstimatedQty = d("10")
		repl.EstimatedTotal = d("60")
		repl.ReplacesLineID = "l1"
		cancelled := line("l3", entities.FlagCancelled, "1", "0", "9")
		cancelled.EstimatedTotal = d("9")

		lines := []entities.LineItem{orig, repl, cancelled}
		got := EstimatedTotal(lines, decimal.Zero)
		if !got.Equal(d("60")) {
			t.Fatalf("expected 60, got %s", got)
		}
		if !got.Equal(FinalTotal(lines, decimal.Zero)) {
			t.Fatalf("estimate %s should match final %s", got, FinalTotal(lines, decimal.Zero))
		}
	})

	t.Run("frozen after live edits", func(t *testing.T) {
		edited := frozen.Clone()
		edited.OrderedQty = d("99")
		edited.Rate = d("100")
		before := EstimatedTotal([]entities.LineItem{frozen}, decimal.Zero)
		after := EstimatedTotal([]entities.LineItem{edited}, decimal.Zero)
		if !before.Equal(after) {
			t.Fatalf("estimate moved from %s to %s", before, after)
		}
		if FinalTotal([]entities.LineItem{edited}, decimal.Zero).Equal(before) {
			t.Fatalf("expected final total to follow the live quantity")
		}
	})
}

func TestCheckerRunningTotal(t *testing.T) {
	l := line("l1", entities.FlagInStock, "5", "0", "3")
	other := line("l2", entities.FlagAvailable, "10", "4", "2")
	edited := map[string]decimal.Decimal{"l1": d("7")}

	t.Run("edited but unchecked line contributes nothing", func(t *testing.T) {
		got := CheckerRunningTotal([]entities.LineItem{l}, edited, map[string]bool{})
		if !got.IsZero() {
			t.Fatalf("expected 0, got %s", got)
		}
	})

	t.Run("checked line uses edited qty", func(t *testing.T) {
		got := CheckerRunningTotal([]entities.LineItem{l, other}, edited, map[string]bool{"l1": true, "l2": true})
		if !got.Equal(d("29")) {
			t.Fatalf("expected 21+8=29, got %s", got)
		}
	})

	t.Run("checked set entry set to false is excluded", func(t *testing.T) {
		got := CheckerRunningTotal([]entities.LineItem{l, other}, nil, map[string]bool{"l1": false, "l2": true})
		if !got.Equal(d("8")) {
			t.Fatalf("expected 8, got %s", got)
		}
	})
}

func TestCompute(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	o := entities.Order{ID: "o-1", FreightCharge: d("2"), IsBilled: true, UpdatedAt: now}
	a := line("l1", entities.FlagInStock, "2", "0", "10")
	a.EstimatedQty, a.EstimatedTotal = d("2"), d("20")
	b := line("l2", entities.FlagNotAvailable, "3", "0", "10")

	bill := Compute(o, []entities.LineItem{a, b})
	if bill.OrderID != "o-1" || !bill.IsBilled {
		t.Fatalf("unexpected header: %+v", bill)
	}
	if !bill.EstimatedTotal.Equal(d("22")) || !bill.FinalTotal.Equal(d("22")) {
		t.Fatalf("unexpected totals: estimated=%s final=%s", bill.EstimatedTotal, bill.FinalTotal)
	}
	if len(bill.Lines) != 2 || !bill.Lines[0].Counted || bill.Lines[1].Counted {
		t.Fatalf("unexpected breakdown: %+v", bill.Lines)
	}
}
