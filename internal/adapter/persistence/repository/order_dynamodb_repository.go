package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"orderflow/internal/domain/entities"
	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName = "orders"
	defaultLinesTableName  = "order_lines"
	linesOrderIDIndex      = "order_id-index"

	// maxTransactItems is the DynamoDB limit for one TransactWriteItems call.
	maxTransactItems = 100
)

type orderItem struct {
	ID               string `dynamodbav:"id"`
	ApprovalFlag     string `dynamodbav:"approval_flag"`
	SalesmanID       string `dynamodbav:"salesman_id"`
	SalesmanSince    string `dynamodbav:"salesman_since"`
	StorekeeperID    string `dynamodbav:"storekeeper_id"`
	StorekeeperSince string `dynamodbav:"storekeeper_since"`
	CheckerID        string `dynamodbav:"checker_id"`
	CheckerSince     string `dynamodbav:"checker_since"`
	BillerID         string `dynamodbav:"biller_id"`
	BillerSince      string `dynamodbav:"biller_since"`
	IsBilled         bool   `dynamodbav:"is_billed"`
	FreightCharge    string `dynamodbav:"freight_charge"`
	Note             string `dynamodbav:"note"`
	Version          int64  `dynamodbav:"version"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
}

type imageItem struct {
	ID          string `dynamodbav:"id"`
	ContentType string `dynamodbav:"content_type"`
	Data        []byte `dynamodbav:"data"`
	AttachedBy  string `dynamodbav:"attached_by"`
	AttachedAt  string `dynamodbav:"attached_at"`
}

type suggestionItem struct {
	ID                 string `dynamodbav:"id"`
	ProposedProductRef string `dynamodbav:"product_ref"`
	Price              string `dynamodbav:"price"`
	Note               string `dynamodbav:"note"`
	ProposedBy         string `dynamodbav:"proposed_by"`
	CreatedAt          string `dynamodbav:"created_at"`
}

type lineItemRecord struct {
	ID                  string           `dynamodbav:"id"`
	OrderID             string           `dynamodbav:"order_id"`
	ProductRef          string           `dynamodbav:"product_ref"`
	OrderedQty          string           `dynamodbav:"ordered_qty"`
	AvailableQty        string           `dynamodbav:"available_qty"`
	Rate                string           `dynamodbav:"rate"`
	Flag                string           `dynamodbav:"flag"`
	Note                string           `dynamodbav:"note"`
	Narration           string           `dynamodbav:"narration"`
	IsChecked           bool             `dynamodbav:"is_checked"`
	EstimatedQty        string           `dynamodbav:"estimated_qty"`
	EstimatedTotal      string           `dynamodbav:"estimated_total"`
	EstimatedAt         string           `dynamodbav:"estimated_at"`
	Images              []imageItem      `dynamodbav:"images,omitempty"`
	Suggestions         []suggestionItem `dynamodbav:"suggestions,omitempty"`
	ReplacesLineID      string           `dynamodbav:"replaces_line_id"`
	ReplacedByLineID    string           `dynamodbav:"replaced_by_line_id"`
	DecisionOwnerID     string           `dynamodbav:"decision_owner_id"`
	DecisionOwnerSince  string           `dynamodbav:"decision_owner_since"`
	SupplierRef         string           `dynamodbav:"supplier_ref"`
	SupplierStatus      string           `dynamodbav:"supplier_status"`
	SupplierOfferedQty  string           `dynamodbav:"supplier_offered_qty"`
	SupplierRequestedAt string           `dynamodbav:"supplier_requested_at"`
	SupplierRespondedAt string           `dynamodbav:"supplier_responded_at"`
	Version             int64            `dynamodbav:"version"`
	CreatedAt           string           `dynamodbav:"created_at"`
	UpdatedAt           string           `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists orders and their lines in DynamoDB.
//
// Table requirements:
//   - orders: PK id (string)
//   - order_lines: PK id (string), GSI order_id-index (PK: order_id)
//
// Every write is conditioned on the stored version; claims are conditioned on
// the slot being empty. Multi-entity writes go through TransactWriteItems.
type OrderDynamoRepository struct {
	ddb         *dynamodb.Client
	ordersTable string
	linesTable  string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client, cfg appconfig.AWSConfig) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:         ddb,
		ordersTable: tableOrDefault(cfg.OrdersTable, defaultOrdersTableName),
		linesTable:  tableOrDefault(cfg.LinesTable, defaultLinesTableName),
	}
}

func (r *OrderDynamoRepository) CreateOrder(ctx context.Context, o entities.Order, lines []entities.LineItem) (entities.Order, []entities.LineItem, error) {
	o.Version = 1
	created := make([]entities.LineItem, 0, len(lines))
	for _, l := range lines {
		l = l.Clone()
		l.Version = 1
		created = append(created, l)
	}
	orderPut, err := r.newPut(r.ordersTable, toOrderItem(o))
	if err != nil {
		return entities.Order{}, nil, err
	}
	items := []types.TransactWriteItem{{Put: orderPut}}
	for _, l := range created {
		p, err := r.newPut(r.linesTable, toLineRecord(l))
		if err != nil {
			return entities.Order{}, nil, err
		}
		items = append(items, types.TransactWriteItem{Put: p})
	}
	if err := r.transact(ctx, items); err != nil {
		if isConditionFailure(err) {
			return entities.Order{}, nil, fmt.Errorf("order %s already exists", o.ID)
		}
		return entities.Order{}, nil, err
	}
	return o, created, nil
}

func (r *OrderDynamoRepository) LoadOrder(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.ordersTable),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}
	return unmarshalOrder(out.Item)
}

func (r *OrderDynamoRepository) SaveOrder(ctx context.Context, o entities.Order) (entities.Order, error) {
	stored, err := r.Commit(ctx, interfaces.Changeset{Order: &o})
	if err != nil {
		return entities.Order{}, err
	}
	return *stored.Order, nil
}

// LoadLines queries the order_id GSI. GSI reads are eventually consistent,
// so each line is re-read by key before it is returned.
func (r *OrderDynamoRepository) LoadLines(ctx context.Context, orderID string) ([]entities.LineItem, error) {
	var (
		ids   []string
		start map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.linesTable),
			IndexName:              aws.String(linesOrderIDIndex),
			KeyConditionExpression: aws.String("order_id = :oid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":oid": &types.AttributeValueMemberS{Value: orderID},
			},
			ExclusiveStartKey: start,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			if v, ok := raw["id"].(*types.AttributeValueMemberS); ok {
				ids = append(ids, v.Value)
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		start = out.LastEvaluatedKey
	}

	lines := make([]entities.LineItem, 0, len(ids))
	for _, id := range ids {
		l, err := r.LoadLine(ctx, id)
		if err != nil {
			return nil, err
		}
		if l.ID != "" {
			lines = append(lines, l)
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].CreatedAt.Equal(lines[j].CreatedAt) {
			return lines[i].ID < lines[j].ID
		}
		return lines[i].CreatedAt.Before(lines[j].CreatedAt)
	})
	return lines, nil
}

func (r *OrderDynamoRepository) LoadLine(ctx context.Context, id string) (entities.LineItem, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.linesTable),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.LineItem{}, err
	}
	if len(out.Item) == 0 {
		return entities.LineItem{}, nil
	}
	return unmarshalLine(out.Item)
}

func (r *OrderDynamoRepository) SaveLine(ctx context.Context, l entities.LineItem) (entities.LineItem, error) {
	stored, err := r.Commit(ctx, interfaces.Changeset{Lines: []entities.LineItem{l}})
	if err != nil {
		return entities.LineItem{}, err
	}
	return stored.Lines[0], nil
}

func (r *OrderDynamoRepository) Commit(ctx context.Context, c interfaces.Changeset) (interfaces.Changeset, error) {
	var (
		out   interfaces.Changeset
		items []types.TransactWriteItem
	)
	if c.Order != nil {
		o := *c.Order
		expected := o.Version
		o.Version++
		p, err := r.versionedPut(r.ordersTable, toOrderItem(o), expected)
		if err != nil {
			return interfaces.Changeset{}, err
		}
		items = append(items, types.TransactWriteItem{Put: p})
		out.Order = &o
	}
	for _, l := range c.Lines {
		l = l.Clone()
		expected := l.Version
		l.Version++
		p, err := r.versionedPut(r.linesTable, toLineRecord(l), expected)
		if err != nil {
			return interfaces.Changeset{}, err
		}
		items = append(items, types.TransactWriteItem{Put: p})
		out.Lines = append(out.Lines, l)
	}
	for _, l := range c.NewLines {
		l = l.Clone()
		l.Version = 1
		p, err := r.newPut(r.linesTable, toLineRecord(l))
		if err != nil {
			return interfaces.Changeset{}, err
		}
		items = append(items, types.TransactWriteItem{Put: p})
		out.NewLines = append(out.NewLines, l)
	}
	if len(items) == 0 {
		return out, nil
	}
	if err := r.transact(ctx, items); err != nil {
		if isConditionFailure(err) {
			return interfaces.Changeset{}, entities.ErrConcurrentUpdate
		}
		return interfaces.Changeset{}, err
	}
	return out, nil
}

func (r *OrderDynamoRepository) transact(ctx context.Context, items []types.TransactWriteItem) error {
	if len(items) > maxTransactItems {
		return fmt.Errorf("changeset of %d writes exceeds the transaction limit", len(items))
	}
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	return err
}

func (r *OrderDynamoRepository) newPut(table string, item any) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:                aws.String(table),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}, nil
}

func (r *OrderDynamoRepository) versionedPut(table string, item any, expected int64) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, err
	}
	return &types.Put{
		TableName:           aws.String(table),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.FormatInt(expected, 10)},
		},
	}, nil
}

var slotAttributes = map[entities.Role][2]string{
	entities.RoleStorekeeper: {"storekeeper_id", "storekeeper_since"},
	entities.RoleChecker:     {"checker_id", "checker_since"},
	entities.RoleBiller:      {"biller_id", "biller_since"},
}

func (r *OrderDynamoRepository) ClaimOrderRole(ctx context.Context, orderID string, role entities.Role, actorID string, at time.Time) (entities.Order, error) {
	attrs, ok := slotAttributes[role]
	if !ok {
		return entities.Order{}, fmt.Errorf("role %s has no claimable slot", role)
	}
	values := map[string]types.AttributeValue{
		":actor": &types.AttributeValueMemberS{Value: actorID},
		":since": &types.AttributeValueMemberS{Value: formatTime(at)},
		":empty": &types.AttributeValueMemberS{Value: ""},
	}
	closed := make([]string, 0, len(entities.ClaimClosingFlags))
	for i, f := range entities.ClaimClosingFlags {
		key := fmt.Sprintf(":closed%d", i)
		values[key] = &types.AttributeValueMemberS{Value: string(f)}
		closed = append(closed, key)
	}
	return r.updateOrder(ctx, orderID,
		"SET #slot = :actor, #since = :since, #version = #version + :one",
		"attribute_exists(#id) AND (attribute_not_exists(#slot) OR #slot = :empty) AND NOT (#approval IN ("+strings.Join(closed, ", ")+"))",
		map[string]string{"#slot": attrs[0], "#since": attrs[1], "#approval": "approval_flag"},
		values,
	)
}

func (r *OrderDynamoRepository) ReleaseOrderRole(ctx context.Context, orderID string, role entities.Role, expectedActorID string) (entities.Order, error) {
	attrs, ok := slotAttributes[role]
	if !ok {
		return entities.Order{}, fmt.Errorf("role %s has no claimable slot", role)
	}
	return r.updateOrder(ctx, orderID,
		"SET #slot = :empty, #since = :empty, #version = #version + :one",
		"attribute_exists(#id) AND #slot = :expected",
		map[string]string{"#slot": attrs[0], "#since": attrs[1]},
		map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberS{Value: expectedActorID},
			":empty":    &types.AttributeValueMemberS{Value: ""},
		},
	)
}

// updateOrder runs one conditional update. A failed condition is not an
// error: the stored order is returned so the caller can see who won.
func (r *OrderDynamoRepository) updateOrder(ctx context.Context, id, updateExpr, condExpr string, names map[string]string, values map[string]types.AttributeValue) (entities.Order, error) {
	values[":one"] = &types.AttributeValueMemberN{Value: "1"}
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.ordersTable),
		Key:                       idKey(id),
		UpdateExpression:          aws.String(updateExpr),
		ConditionExpression:       aws.String(condExpr),
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id", "#version": "version"}),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailure(err) {
			return r.LoadOrder(ctx, id)
		}
		return entities.Order{}, err
	}
	return unmarshalOrder(out.Attributes)
}

func (r *OrderDynamoRepository) ClaimLineDecision(ctx context.Context, lineID string, actorID string, at time.Time) (entities.LineItem, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.linesTable),
		Key:                 idKey(lineID),
		UpdateExpression:    aws.String("SET #owner = :actor, #since = :since, #version = #version + :one"),
		ConditionExpression: aws.String("attribute_exists(#id) AND (attribute_not_exists(#owner) OR #owner = :empty)"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#owner":   "decision_owner_id",
			"#since":   "decision_owner_since",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":actor": &types.AttributeValueMemberS{Value: actorID},
			":since": &types.AttributeValueMemberS{Value: formatTime(at)},
			":empty": &types.AttributeValueMemberS{Value: ""},
			":one":   &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailure(err) {
			return r.LoadLine(ctx, lineID)
		}
		return entities.LineItem{}, err
	}
	return unmarshalLine(out.Attributes)
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalOrder(av map[string]types.AttributeValue) (entities.Order, error) {
	if len(av) == 0 {
		return entities.Order{}, nil
	}
	var it orderItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it), nil
}

func unmarshalLine(av map[string]types.AttributeValue) (entities.LineItem, error) {
	if len(av) == 0 {
		return entities.LineItem{}, nil
	}
	var it lineItemRecord
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.LineItem{}, err
	}
	return fromLineRecord(it), nil
}

func toOrderItem(o entities.Order) orderItem {
	return orderItem{
		ID:               o.ID,
		ApprovalFlag:     string(o.ApprovalFlag),
		SalesmanID:       o.Salesman.String(),
		SalesmanSince:    formatTime(o.Salesman.Since()),
		StorekeeperID:    o.Storekeeper.String(),
		StorekeeperSince: formatTime(o.Storekeeper.Since()),
		CheckerID:        o.Checker.String(),
		CheckerSince:     formatTime(o.Checker.Since()),
		BillerID:         o.Biller.String(),
		BillerSince:      formatTime(o.Biller.Since()),
		IsBilled:         o.IsBilled,
		FreightCharge:    decimalString(o.FreightCharge),
		Note:             o.Note,
		Version:          o.Version,
		CreatedAt:        formatTime(o.CreatedAt),
		UpdatedAt:        formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) entities.Order {
	return entities.Order{
		ID:            it.ID,
		ApprovalFlag:  entities.ApprovalFlag(it.ApprovalFlag),
		Salesman:      entities.AssignedTo(it.SalesmanID, parseTime(it.SalesmanSince)),
		Storekeeper:   entities.AssignedTo(it.StorekeeperID, parseTime(it.StorekeeperSince)),
		Checker:       entities.AssignedTo(it.CheckerID, parseTime(it.CheckerSince)),
		Biller:        entities.AssignedTo(it.BillerID, parseTime(it.BillerSince)),
		IsBilled:      it.IsBilled,
		FreightCharge: parseDecimal(it.FreightCharge),
		Note:          it.Note,
		Version:       it.Version,
		CreatedAt:     parseTime(it.CreatedAt),
		UpdatedAt:     parseTime(it.UpdatedAt),
	}
}

func toLineRecord(l entities.LineItem) lineItemRecord {
	rec := lineItemRecord{
		ID:                  l.ID,
		OrderID:             l.OrderID,
		ProductRef:          l.ProductRef,
		OrderedQty:          decimalString(l.OrderedQty),
		AvailableQty:        decimalString(l.AvailableQty),
		Rate:                decimalString(l.Rate),
		Flag:                l.Flag.String(),
		Note:                l.Note,
		Narration:           l.Narration,
		IsChecked:           l.IsChecked,
		EstimatedQty:        decimalString(l.EstimatedQty),
		EstimatedTotal:      decimalString(l.EstimatedTotal),
		EstimatedAt:         formatTime(l.EstimatedAt),
		ReplacesLineID:      l.ReplacesLineID,
		ReplacedByLineID:    l.ReplacedByLineID,
		DecisionOwnerID:     l.DecisionOwner.String(),
		DecisionOwnerSince:  formatTime(l.DecisionOwner.Since()),
		SupplierRef:         l.Supplier.SupplierRef,
		SupplierStatus:      string(l.Supplier.Status),
		SupplierOfferedQty:  decimalString(l.Supplier.OfferedQty),
		SupplierRequestedAt: formatTime(l.Supplier.RequestedAt),
		SupplierRespondedAt: formatTime(l.Supplier.RespondedAt),
		Version:             l.Version,
		CreatedAt:           formatTime(l.CreatedAt),
		UpdatedAt:           formatTime(l.UpdatedAt),
	}
	for _, img := range l.Images {
		rec.Images = append(rec.Images, imageItem{
			ID:          img.ID,
			ContentType: img.ContentType,
			Data:        img.Data,
			AttachedBy:  img.AttachedBy,
			AttachedAt:  formatTime(img.AttachedAt),
		})
	}
	for _, s := range l.Suggestions {
		rec.Suggestions = append(rec.Suggestions, suggestionItem{
			ID:                 s.ID,
			ProposedProductRef: s.ProposedProductRef,
			Price:              decimalString(s.Price),
			Note:               s.Note,
			ProposedBy:         s.ProposedBy,
			CreatedAt:          formatTime(s.CreatedAt),
		})
	}
	return rec
}

func fromLineRecord(rec lineItemRecord) entities.LineItem {
	flag, _ := entities.ParseFulfillmentFlag(rec.Flag)
	l := entities.LineItem{
		ID:               rec.ID,
		OrderID:          rec.OrderID,
		ProductRef:       rec.ProductRef,
		OrderedQty:       parseDecimal(rec.OrderedQty),
		AvailableQty:     parseDecimal(rec.AvailableQty),
		Rate:             parseDecimal(rec.Rate),
		Flag:             flag,
		Note:             rec.Note,
		Narration:        rec.Narration,
		IsChecked:        rec.IsChecked,
		EstimatedQty:     parseDecimal(rec.EstimatedQty),
		EstimatedTotal:   parseDecimal(rec.EstimatedTotal),
		EstimatedAt:      parseTime(rec.EstimatedAt),
		ReplacesLineID:   rec.ReplacesLineID,
		ReplacedByLineID: rec.ReplacedByLineID,
		DecisionOwner:    entities.AssignedTo(rec.DecisionOwnerID, parseTime(rec.DecisionOwnerSince)),
		Supplier: entities.SupplierState{
			SupplierRef: rec.SupplierRef,
			Status:      entities.SupplierStatus(rec.SupplierStatus),
			OfferedQty:  parseDecimal(rec.SupplierOfferedQty),
			RequestedAt: parseTime(rec.SupplierRequestedAt),
			RespondedAt: parseTime(rec.SupplierRespondedAt),
		},
		Version:   rec.Version,
		CreatedAt: parseTime(rec.CreatedAt),
		UpdatedAt: parseTime(rec.UpdatedAt),
	}
	for _, img := range rec.Images {
		l.Images = append(l.Images, entities.Image{
			ID:          img.ID,
			ContentType: img.ContentType,
			Data:        img.Data,
			AttachedBy:  img.AttachedBy,
			AttachedAt:  parseTime(img.AttachedAt),
		})
	}
	for _, s := range rec.Suggestions {
		l.Suggestions = append(l.Suggestions, entities.Suggestion{
			ID:                 s.ID,
			OwnerLineID:        rec.ID,
			ProposedProductRef: s.ProposedProductRef,
			Price:              parseDecimal(s.Price),
			Note:               s.Note,
			ProposedBy:         s.ProposedBy,
			CreatedAt:          parseTime(s.CreatedAt),
		})
	}
	return l
}
