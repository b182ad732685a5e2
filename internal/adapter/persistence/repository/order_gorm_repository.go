package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orderflow/internal/domain/entities"
	"orderflow/internal/usecase/interfaces"

	"gorm.io/gorm"
)

type orderModel struct {
	ID               string `gorm:"primaryKey;size:64"`
	ApprovalFlag     string `gorm:"size:32;index"`
	SalesmanID       string `gorm:"size:64"`
	SalesmanSince    time.Time
	StorekeeperID    string `gorm:"size:64"`
	StorekeeperSince time.Time
	CheckerID        string `gorm:"size:64"`
	CheckerSince     time.Time
	BillerID         string `gorm:"size:64"`
	BillerSince      time.Time
	IsBilled         bool
	FreightCharge    string `gorm:"size:64"`
	Note             string
	Version          int64
	CreatedAt        time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime:false"`
}

func (orderModel) TableName() string { return "orders" }

type lineModel struct {
	ID                  string `gorm:"primaryKey;size:64"`
	OrderID             string `gorm:"size:64;index"`
	ProductRef          string
	OrderedQty          string `gorm:"size:64"`
	AvailableQty        string `gorm:"size:64"`
	Rate                string `gorm:"size:64"`
	Flag                string `gorm:"size:32"`
	Note                string
	Narration           string
	IsChecked           bool
	EstimatedQty        string `gorm:"size:64"`
	EstimatedTotal      string `gorm:"size:64"`
	EstimatedAt         time.Time
	Images              []imageItem      `gorm:"serializer:json"`
	Suggestions         []suggestionItem `gorm:"serializer:json"`
	ReplacesLineID      string           `gorm:"size:64"`
	ReplacedByLineID    string           `gorm:"size:64"`
	DecisionOwnerID     string           `gorm:"size:64"`
	DecisionOwnerSince  time.Time
	SupplierRef         string
	SupplierStatus      string `gorm:"size:32"`
	SupplierOfferedQty  string `gorm:"size:64"`
	SupplierRequestedAt time.Time
	SupplierRespondedAt time.Time
	Version             int64
	CreatedAt           time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime:false"`
}

func (lineModel) TableName() string { return "order_lines" }

type billPaymentModel struct {
	ID                 string `gorm:"primaryKey;size:64"`
	OrderID            string `gorm:"size:64;index"`
	Amount             string `gorm:"size:64"`
	Date               time.Time
	Status             string                 `gorm:"size:32"`
	ProviderPayload    map[string]interface{} `gorm:"serializer:json"`
	ProviderPayloadRaw string
}

func (billPaymentModel) TableName() string { return "bill_payments" }

// Migrate creates or updates the relational schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&orderModel{}, &lineModel{}, &billPaymentModel{})
}

// OrderGormRepository persists orders and lines in a relational database.
// Versioned writes are UPDATE ... WHERE version = ? and a zero row count is a
// lost race.
type OrderGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IOrderRepository = (*OrderGormRepository)(nil)

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) CreateOrder(ctx context.Context, o entities.Order, lines []entities.LineItem) (entities.Order, []entities.LineItem, error) {
	o.Version = 1
	created := make([]entities.LineItem, 0, len(lines))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		om := toOrderModel(o)
		if err := tx.Create(&om).Error; err != nil {
			return err
		}
		for _, l := range lines {
			l = l.Clone()
			l.Version = 1
			lm := toLineModel(l)
			if err := tx.Create(&lm).Error; err != nil {
				return err
			}
			created = append(created, l)
		}
		return nil
	})
	if err != nil {
		return entities.Order{}, nil, err
	}
	return o, created, nil
}

func (r *OrderGormRepository) LoadOrder(ctx context.Context, id string) (entities.Order, error) {
	return loadOrderTx(r.db.WithContext(ctx), id)
}

func loadOrderTx(tx *gorm.DB, id string) (entities.Order, error) {
	var m orderModel
	err := tx.Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Order{}, nil
	}
	if err != nil {
		return entities.Order{}, err
	}
	return fromOrderModel(m), nil
}

func (r *OrderGormRepository) SaveOrder(ctx context.Context, o entities.Order) (entities.Order, error) {
	stored, err := r.Commit(ctx, interfaces.Changeset{Order: &o})
	if err != nil {
		return entities.Order{}, err
	}
	return *stored.Order, nil
}

func (r *OrderGormRepository) LoadLines(ctx context.Context, orderID string) ([]entities.LineItem, error) {
	var ms []lineModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at, id").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entities.LineItem, 0, len(ms))
	for _, m := range ms {
		out = append(out, fromLineModel(m))
	}
	return out, nil
}

func (r *OrderGormRepository) LoadLine(ctx context.Context, id string) (entities.LineItem, error) {
	return loadLineTx(r.db.WithContext(ctx), id)
}

func loadLineTx(tx *gorm.DB, id string) (entities.LineItem, error) {
	var m lineModel
	err := tx.Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.LineItem{}, nil
	}
	if err != nil {
		return entities.LineItem{}, err
	}
	return fromLineModel(m), nil
}

func (r *OrderGormRepository) SaveLine(ctx context.Context, l entities.LineItem) (entities.LineItem, error) {
	stored, err := r.Commit(ctx, interfaces.Changeset{Lines: []entities.LineItem{l}})
	if err != nil {
		return entities.LineItem{}, err
	}
	return stored.Lines[0], nil
}

func (r *OrderGormRepository) Commit(ctx context.Context, c interfaces.Changeset) (interfaces.Changeset, error) {
	var out interfaces.Changeset
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.Order != nil {
			o := *c.Order
			expected := o.Version
			o.Version++
			m := toOrderModel(o)
			res := tx.Model(&orderModel{}).Where("id = ? AND version = ?", o.ID, expected).Select("*").Updates(&m)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return entities.ErrConcurrentUpdate
			}
			out.Order = &o
		}
		for _, l := range c.Lines {
			l = l.Clone()
			expected := l.Version
			l.Version++
			m := toLineModel(l)
			res := tx.Model(&lineModel{}).Where("id = ? AND version = ?", l.ID, expected).Select("*").Updates(&m)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return entities.ErrConcurrentUpdate
			}
			out.Lines = append(out.Lines, l)
		}
		for _, l := range c.NewLines {
			l = l.Clone()
			l.Version = 1
			m := toLineModel(l)
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			out.NewLines = append(out.NewLines, l)
		}
		return nil
	})
	if err != nil {
		return interfaces.Changeset{}, err
	}
	return out, nil
}

var slotColumns = map[entities.Role][2]string{
	entities.RoleStorekeeper: {"storekeeper_id", "storekeeper_since"},
	entities.RoleChecker:     {"checker_id", "checker_since"},
	entities.RoleBiller:      {"biller_id", "biller_since"},
}

func claimClosingFlags() []string {
	out := make([]string, 0, len(entities.ClaimClosingFlags))
	for _, f := range entities.ClaimClosingFlags {
		out = append(out, string(f))
	}
	return out
}

func (r *OrderGormRepository) ClaimOrderRole(ctx context.Context, orderID string, role entities.Role, actorID string, at time.Time) (entities.Order, error) {
	cols, ok := slotColumns[role]
	if !ok {
		return entities.Order{}, fmt.Errorf("role %s has no claimable slot", role)
	}
	db := r.db.WithContext(ctx)
	err := db.Model(&orderModel{}).
		Where("id = ? AND ("+cols[0]+" = '' OR "+cols[0]+" IS NULL)", orderID).
		Where("approval_flag NOT IN ?", claimClosingFlags()).
		Updates(map[string]interface{}{
			cols[0]:   actorID,
			cols[1]:   at.UTC(),
			"version": gorm.Expr("version + 1"),
		}).Error
	if err != nil {
		return entities.Order{}, err
	}
	return loadOrderTx(db, orderID)
}

func (r *OrderGormRepository) ReleaseOrderRole(ctx context.Context, orderID string, role entities.Role, expectedActorID string) (entities.Order, error) {
	cols, ok := slotColumns[role]
	if !ok {
		return entities.Order{}, fmt.Errorf("role %s has no claimable slot", role)
	}
	db := r.db.WithContext(ctx)
	err := db.Model(&orderModel{}).
		Where("id = ? AND "+cols[0]+" = ?", orderID, expectedActorID).
		Updates(map[string]interface{}{
			cols[0]:   "",
			cols[1]:   time.Time{},
			"version": gorm.Expr("version + 1"),
		}).Error
	if err != nil {
		return entities.Order{}, err
	}
	return loadOrderTx(db, orderID)
}

func (r *OrderGormRepository) ClaimLineDecision(ctx context.Context, lineID string, actorID string, at time.Time) (entities.LineItem, error) {
	db := r.db.WithContext(ctx)
	err := db.Model(&lineModel{}).
		Where("id = ? AND (decision_owner_id = '' OR decision_owner_id IS NULL)", lineID).
		Updates(map[string]interface{}{
			"decision_owner_id":    actorID,
			"decision_owner_since": at.UTC(),
			"version":              gorm.Expr("version + 1"),
		}).Error
	if err != nil {
		return entities.LineItem{}, err
	}
	return loadLineTx(db, lineID)
}

// BillPaymentGormRepository persists BillPayment rows.
type BillPaymentGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IBillPaymentRepository = (*BillPaymentGormRepository)(nil)

func NewBillPaymentGormRepository(db *gorm.DB) *BillPaymentGormRepository {
	return &BillPaymentGormRepository{db: db}
}

func (r *BillPaymentGormRepository) Create(ctx context.Context, p entities.BillPayment) (entities.BillPayment, error) {
	m := billPaymentModel{
		ID:                 p.ID,
		OrderID:            p.OrderID,
		Amount:             decimalString(p.Amount),
		Date:               p.Date.UTC(),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return entities.BillPayment{}, err
	}
	return p, nil
}

func (r *BillPaymentGormRepository) GetByID(ctx context.Context, id string) (entities.BillPayment, error) {
	var m billPaymentModel
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.BillPayment{}, nil
	}
	if err != nil {
		return entities.BillPayment{}, err
	}
	return fromBillPaymentModel(m), nil
}

func (r *BillPaymentGormRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.BillPayment, error) {
	var ms []billPaymentModel
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("date").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]entities.BillPayment, 0, len(ms))
	for _, m := range ms {
		out = append(out, fromBillPaymentModel(m))
	}
	return out, nil
}

func fromBillPaymentModel(m billPaymentModel) entities.BillPayment {
	return entities.BillPayment{
		ID:                 m.ID,
		OrderID:            m.OrderID,
		Amount:             parseDecimal(m.Amount),
		Date:               m.Date.UTC(),
		Status:             entities.PaymentStatus(m.Status),
		ProviderPayload:    m.ProviderPayload,
		ProviderPayloadRaw: []byte(m.ProviderPayloadRaw),
	}
}

// The relational models reuse the DynamoDB records for the string-encoded
// fields so both stores round-trip identically.

func toOrderModel(o entities.Order) orderModel {
	it := toOrderItem(o)
	return orderModel{
		ID:               it.ID,
		ApprovalFlag:     it.ApprovalFlag,
		SalesmanID:       it.SalesmanID,
		SalesmanSince:    o.Salesman.Since(),
		StorekeeperID:    it.StorekeeperID,
		StorekeeperSince: o.Storekeeper.Since(),
		CheckerID:        it.CheckerID,
		CheckerSince:     o.Checker.Since(),
		BillerID:         it.BillerID,
		BillerSince:      o.Biller.Since(),
		IsBilled:         it.IsBilled,
		FreightCharge:    it.FreightCharge,
		Note:             it.Note,
		Version:          it.Version,
		CreatedAt:        o.CreatedAt.UTC(),
		UpdatedAt:        o.UpdatedAt.UTC(),
	}
}

func fromOrderModel(m orderModel) entities.Order {
	return entities.Order{
		ID:            m.ID,
		ApprovalFlag:  entities.ApprovalFlag(m.ApprovalFlag),
		Salesman:      entities.AssignedTo(m.SalesmanID, m.SalesmanSince),
		Storekeeper:   entities.AssignedTo(m.StorekeeperID, m.StorekeeperSince),
		Checker:       entities.AssignedTo(m.CheckerID, m.CheckerSince),
		Biller:        entities.AssignedTo(m.BillerID, m.BillerSince),
		IsBilled:      m.IsBilled,
		FreightCharge: parseDecimal(m.FreightCharge),
		Note:          m.Note,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

func toLineModel(l entities.LineItem) lineModel {
	rec := toLineRecord(l)
	return lineModel{
		ID:                  rec.ID,
		OrderID:             rec.OrderID,
		ProductRef:          rec.ProductRef,
		OrderedQty:          rec.OrderedQty,
		AvailableQty:        rec.AvailableQty,
		Rate:                rec.Rate,
		Flag:                rec.Flag,
		Note:                rec.Note,
		Narration:           rec.Narration,
		IsChecked:           rec.IsChecked,
		EstimatedQty:        rec.EstimatedQty,
		EstimatedTotal:      rec.EstimatedTotal,
		EstimatedAt:         l.EstimatedAt.UTC(),
		Images:              rec.Images,
		Suggestions:         rec.Suggestions,
		ReplacesLineID:      rec.ReplacesLineID,
		ReplacedByLineID:    rec.ReplacedByLineID,
		DecisionOwnerID:     rec.DecisionOwnerID,
		DecisionOwnerSince:  l.DecisionOwner.Since(),
		SupplierRef:         rec.SupplierRef,
		SupplierStatus:      rec.SupplierStatus,
		SupplierOfferedQty:  rec.SupplierOfferedQty,
		SupplierRequestedAt: l.Supplier.RequestedAt.UTC(),
		SupplierRespondedAt: l.Supplier.RespondedAt.UTC(),
		Version:             rec.Version,
		CreatedAt:           l.CreatedAt.UTC(),
		UpdatedAt:           l.UpdatedAt.UTC(),
	}
}

func fromLineModel(m lineModel) entities.LineItem {
	l := fromLineRecord(lineItemRecord{
		ID:                 m.ID,
		OrderID:            m.OrderID,
		ProductRef:         m.ProductRef,
		OrderedQty:         m.OrderedQty,
		AvailableQty:       m.AvailableQty,
		Rate:               m.Rate,
		Flag:               m.Flag,
		Note:               m.Note,
		Narration:          m.Narration,
		IsChecked:          m.IsChecked,
		EstimatedQty:       m.EstimatedQty,
		EstimatedTotal:     m.EstimatedTotal,
		Images:             m.Images,
		Suggestions:        m.Suggestions,
		ReplacesLineID:     m.ReplacesLineID,
		ReplacedByLineID:   m.ReplacedByLineID,
		DecisionOwnerID:    m.DecisionOwnerID,
		SupplierRef:        m.SupplierRef,
		SupplierStatus:     m.SupplierStatus,
		SupplierOfferedQty: m.SupplierOfferedQty,
		Version:            m.Version,
	})
	l.EstimatedAt = utcOrZero(m.EstimatedAt)
	l.DecisionOwner = entities.AssignedTo(m.DecisionOwnerID, m.DecisionOwnerSince)
	l.Supplier.RequestedAt = utcOrZero(m.SupplierRequestedAt)
	l.Supplier.RespondedAt = utcOrZero(m.SupplierRespondedAt)
	l.CreatedAt = m.CreatedAt.UTC()
	l.UpdatedAt = m.UpdatedAt.UTC()
	return l
}

func utcOrZero(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}
