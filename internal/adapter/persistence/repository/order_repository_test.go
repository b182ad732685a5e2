package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"orderflow/internal/domain/entities"
	"orderflow/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type repoFactory struct {
	name string
	new  func(t *testing.T) interfaces.IOrderRepository
}

func repoFactories() []repoFactory {
	return []repoFactory{
		{name: "memory", new: func(t *testing.T) interfaces.IOrderRepository { return NewOrderMemoryRepository() }},
		{name: "gorm-sqlite", new: func(t *testing.T) interfaces.IOrderRepository { return NewOrderGormRepository(newSQLiteDB(t)) }},
	}
}

func sampleOrder(id string) (entities.Order, []entities.LineItem) {
	o := entities.Order{
		ID:            id,
		ApprovalFlag:  entities.ApprovalSentToStorekeeper,
		Salesman:      entities.AssignedTo("s1", t0),
		FreightCharge: decimal.RequireFromString("12.50"),
		Note:          "rush",
		CreatedAt:     t0,
		UpdatedAt:     t0,
	}
	lines := []entities.LineItem{
		{
			ID: id + "-l1", OrderID: id, ProductRef: "SKU-1",
			OrderedQty: decimal.RequireFromString("2"), Rate: decimal.RequireFromString("10.25"),
			Flag: entities.FlagNewItem, CreatedAt: t0, UpdatedAt: t0,
		},
		{
			ID: id + "-l2", OrderID: id, ProductRef: "SKU-2",
			OrderedQty: decimal.RequireFromString("1.5"), Rate: decimal.RequireFromString("3"),
			Flag: entities.FlagNewItem, CreatedAt: t0.Add(time.Second), UpdatedAt: t0.Add(time.Second),
		},
	}
	return o, lines
}

func TestOrderRepository_CreateAndLoad(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.new(t)
			ctx := context.Background()
			o, lines := sampleOrder("o1")

			created, createdLines, err := repo.CreateOrder(ctx, o, lines)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if created.Version != 1 || len(createdLines) != 2 || createdLines[0].Version != 1 {
				t.Fatalf("unexpected versions: %+v %+v", created, createdLines)
			}

			got, err := repo.LoadOrder(ctx, "o1")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !got.FreightCharge.Equal(o.FreightCharge) || !got.Salesman.Is("s1") || got.ApprovalFlag != o.ApprovalFlag {
				t.Fatalf("order did not round-trip: %+v", got)
			}

			gotLines, err := repo.LoadLines(ctx, "o1")
			if err != nil {
				t.Fatalf("load lines: %v", err)
			}
			if len(gotLines) != 2 || gotLines[0].ID != "o1-l1" || gotLines[1].ID != "o1-l2" {
				t.Fatalf("unexpected lines: %+v", gotLines)
			}
			if !gotLines[1].OrderedQty.Equal(decimal.RequireFromString("1.5")) {
				t.Fatalf("qty did not round-trip: %s", gotLines[1].OrderedQty)
			}

			missing, err := repo.LoadOrder(ctx, "nope")
			if err != nil || missing.ID != "" {
				t.Fatalf("expected zero value for missing order, got %+v err=%v", missing, err)
			}
			missingLine, err := repo.LoadLine(ctx, "nope")
			if err != nil || missingLine.ID != "" {
				t.Fatalf("expected zero value for missing line, got %+v err=%v", missingLine, err)
			}
		})
	}
}

func TestOrderRepository_CommitIsVersionConditional(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.new(t)
			ctx := context.Background()
			o, lines := sampleOrder("o2")
			created, createdLines, err := repo.CreateOrder(ctx, o, lines)
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			next := created
			next.ApprovalFlag = entities.ApprovalVerifiedByStorekeeper
			line := createdLines[0].Clone()
			line.Flag = entities.FlagInStock
			line.Images = []entities.Image{{ID: "img1", ContentType: "image/png", Data: []byte{1, 2}, AttachedBy: "c1", AttachedAt: t0}}
			added := entities.LineItem{ID: "o2-l3", OrderID: "o2", ProductRef: "SKU-3", OrderedQty: decimal.NewFromInt(1), Rate: decimal.NewFromInt(1), CreatedAt: t0.Add(2 * time.Second)}

			stored, err := repo.Commit(ctx, interfaces.Changeset{Order: &next, Lines: []entities.LineItem{line}, NewLines: []entities.LineItem{added}})
			if err != nil {
				t.Fatalf("commit: %v", err)
			}
			if stored.Order.Version != 2 || stored.Lines[0].Version != 2 || stored.NewLines[0].Version != 1 {
				t.Fatalf("unexpected stored versions: %+v", stored)
			}

			// Same stale input again: nothing may be written.
			stale := next
			stale.Note = "stale"
			_, err = repo.Commit(ctx, interfaces.Changeset{Order: &stale, Lines: []entities.LineItem{line}})
			if !errors.Is(err, entities.ErrConcurrentUpdate) {
				t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
			}
			got, _ := repo.LoadOrder(ctx, "o2")
			if got.Note != "rush" || got.Version != 2 {
				t.Fatalf("stale commit leaked: %+v", got)
			}

			gotLine, _ := repo.LoadLine(ctx, line.ID)
			if gotLine.Flag != entities.FlagInStock || len(gotLine.Images) != 1 || string(gotLine.Images[0].Data) != string([]byte{1, 2}) {
				t.Fatalf("line did not round-trip: %+v", gotLine)
			}
			all, _ := repo.LoadLines(ctx, "o2")
			if len(all) != 3 {
				t.Fatalf("expected 3 lines, got %d", len(all))
			}
		})
	}
}

func TestOrderRepository_ClaimAndRelease(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.new(t)
			ctx := context.Background()
			o, _ := sampleOrder("o3")
			if _, _, err := repo.CreateOrder(ctx, o, nil); err != nil {
				t.Fatalf("create: %v", err)
			}

			got, err := repo.ClaimOrderRole(ctx, "o3", entities.RoleStorekeeper, "k1", t0)
			if err != nil || !got.Storekeeper.Is("k1") || got.Version != 2 {
				t.Fatalf("first claim should win: %+v err=%v", got, err)
			}
			got, err = repo.ClaimOrderRole(ctx, "o3", entities.RoleStorekeeper, "k2", t0)
			if err != nil || !got.Storekeeper.Is("k1") {
				t.Fatalf("second claim must see the holder: %+v err=%v", got, err)
			}

			got, err = repo.ReleaseOrderRole(ctx, "o3", entities.RoleStorekeeper, "k2")
			if err != nil || !got.Storekeeper.Is("k1") {
				t.Fatalf("release with wrong holder must not reset: %+v err=%v", got, err)
			}
			got, err = repo.ReleaseOrderRole(ctx, "o3", entities.RoleStorekeeper, "k1")
			if err != nil || got.Storekeeper.IsAssigned() {
				t.Fatalf("release should reset: %+v err=%v", got, err)
			}

			missing, err := repo.ClaimOrderRole(ctx, "nope", entities.RoleChecker, "c1", t0)
			if err != nil || missing.ID != "" {
				t.Fatalf("expected zero value claiming a missing order, got %+v err=%v", missing, err)
			}
		})
	}
}

func TestOrderRepository_ClaimRefusedOnClosedOrder(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.new(t)
			ctx := context.Background()
			o, _ := sampleOrder("o5")
			created, _, err := repo.CreateOrder(ctx, o, nil)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			cancelled := created
			cancelled.ApprovalFlag = entities.ApprovalCancelled
			if _, err := repo.Commit(ctx, interfaces.Changeset{Order: &cancelled}); err != nil {
				t.Fatalf("cancel: %v", err)
			}

			got, err := repo.ClaimOrderRole(ctx, "o5", entities.RoleStorekeeper, "k1", t0)
			if err != nil {
				t.Fatalf("claim: %v", err)
			}
			if got.Storekeeper.IsAssigned() || got.Version != 2 || got.ApprovalFlag != entities.ApprovalCancelled {
				t.Fatalf("claim on a cancelled order must not write: %+v", got)
			}

			o6, _ := sampleOrder("o6")
			o6.ApprovalFlag = entities.ApprovalCompleted
			if _, _, err := repo.CreateOrder(ctx, o6, nil); err != nil {
				t.Fatalf("create: %v", err)
			}
			got, err = repo.ClaimOrderRole(ctx, "o6", entities.RoleBiller, "b1", t0)
			if err != nil || !got.Biller.Is("b1") {
				t.Fatalf("biller may still claim a completed order: %+v err=%v", got, err)
			}
		})
	}
}

func TestOrderRepository_ClaimLineDecision(t *testing.T) {
	for _, f := range repoFactories() {
		t.Run(f.name, func(t *testing.T) {
			repo := f.new(t)
			ctx := context.Background()
			o, lines := sampleOrder("o4")
			if _, _, err := repo.CreateOrder(ctx, o, lines); err != nil {
				t.Fatalf("create: %v", err)
			}
			got, err := repo.ClaimLineDecision(ctx, "o4-l1", "s1", t0)
			if err != nil || !got.DecisionOwner.Is("s1") {
				t.Fatalf("claim should win: %+v err=%v", got, err)
			}
			got, err = repo.ClaimLineDecision(ctx, "o4-l1", "a1", t0)
			if err != nil || !got.DecisionOwner.Is("s1") {
				t.Fatalf("second claim must see the holder: %+v err=%v", got, err)
			}
		})
	}
}

func TestOrderMemoryRepository_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	repo := NewOrderMemoryRepository()
	ctx := context.Background()
	o, _ := sampleOrder("o5")
	if _, _, err := repo.CreateOrder(ctx, o, nil); err != nil {
		t.Fatalf("create: %v", err)
	}

	const n = 32
	var wg sync.WaitGroup
	holders := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := repo.ClaimOrderRole(ctx, "o5", entities.RoleChecker, fmt.Sprintf("c%d", i), t0)
			if err != nil {
				t.Errorf("claim: %v", err)
				return
			}
			holders[i] = got.Checker.String()
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if holders[i] != holders[0] {
			t.Fatalf("claims disagree on the holder: %q vs %q", holders[i], holders[0])
		}
	}
	final, _ := repo.LoadOrder(ctx, "o5")
	if final.Version != 2 {
		t.Fatalf("exactly one claim should have written, version=%d", final.Version)
	}
}

func TestBillPaymentRepositories(t *testing.T) {
	repos := map[string]interfaces.IBillPaymentRepository{
		"memory":      NewBillPaymentMemoryRepository(),
		"gorm-sqlite": NewBillPaymentGormRepository(newSQLiteDB(t)),
	}
	for name, repo := range repos {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			p := entities.BillPayment{
				ID: "p1", OrderID: "o1", Amount: decimal.RequireFromString("30.75"), Date: t0,
				Status: entities.PaymentStatusApproved, ProviderPayloadRaw: []byte(`{"id":"p1"}`),
				ProviderPayload: map[string]interface{}{"id": "p1"},
			}
			if _, err := repo.Create(ctx, p); err != nil {
				t.Fatalf("create: %v", err)
			}
			got, err := repo.GetByID(ctx, "p1")
			if err != nil || got.ID != "p1" || !got.Amount.Equal(p.Amount) || got.Status != entities.PaymentStatusApproved {
				t.Fatalf("unexpected payment: %+v err=%v", got, err)
			}
			list, err := repo.ListByOrderID(ctx, "o1")
			if err != nil || len(list) != 1 {
				t.Fatalf("unexpected list: %+v err=%v", list, err)
			}
			none, err := repo.GetByID(ctx, "missing")
			if err != nil || none.ID != "" {
				t.Fatalf("expected zero value, got %+v err=%v", none, err)
			}
		})
	}
}
