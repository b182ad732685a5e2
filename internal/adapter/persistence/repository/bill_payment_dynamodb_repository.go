package repository

import (
	"context"
	"sort"

	"orderflow/internal/domain/entities"
	appconfig "orderflow/internal/infrastructure/config"
	"orderflow/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "bill_payments"
	paymentsOrderIDIndex     = "order_id-index"
)

type billPaymentItem struct {
	ID                 string                 `dynamodbav:"id"`
	OrderID            string                 `dynamodbav:"order_id"`
	Amount             string                 `dynamodbav:"amount"`
	Date               string                 `dynamodbav:"date"`
	Status             string                 `dynamodbav:"status"`
	ProviderPayload    map[string]interface{} `dynamodbav:"provider_payload,omitempty"`
	ProviderPayloadRaw string                 `dynamodbav:"provider_payload_raw,omitempty"`
}

// BillPaymentDynamoRepository persists BillPayment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: order_id-index (PK: order_id)
type BillPaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IBillPaymentRepository = (*BillPaymentDynamoRepository)(nil)

func NewBillPaymentDynamoRepository(ddb *dynamodb.Client, cfg appconfig.AWSConfig) *BillPaymentDynamoRepository {
	return &BillPaymentDynamoRepository{
		ddb:       ddb,
		tableName: tableOrDefault(cfg.PaymentsTable, defaultPaymentsTableName),
	}
}

func (r *BillPaymentDynamoRepository) Create(ctx context.Context, p entities.BillPayment) (entities.BillPayment, error) {
	av, err := attributevalue.MarshalMap(toBillPaymentItem(p))
	if err != nil {
		return entities.BillPayment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.BillPayment{}, err
	}
	return p, nil
}

func (r *BillPaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.BillPayment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.BillPayment{}, err
	}
	if len(out.Item) == 0 {
		return entities.BillPayment{}, nil
	}

	var it billPaymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.BillPayment{}, err
	}
	return fromBillPaymentItem(it), nil
}

func (r *BillPaymentDynamoRepository) ListByOrderID(ctx context.Context, orderID string) ([]entities.BillPayment, error) {
	items := make([]entities.BillPayment, 0)
	var start map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(paymentsOrderIDIndex),
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
			var it billPaymentItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromBillPaymentItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		start = out.LastEvaluatedKey
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
	return items, nil
}

func toBillPaymentItem(p entities.BillPayment) billPaymentItem {
	return billPaymentItem{
		ID:                 p.ID,
		OrderID:            p.OrderID,
		Amount:             decimalString(p.Amount),
		Date:               formatTime(p.Date),
		Status:             string(p.Status),
		ProviderPayload:    p.ProviderPayload,
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
	}
}

func fromBillPaymentItem(it billPaymentItem) entities.BillPayment {
	return entities.BillPayment{
		ID:                 it.ID,
		OrderID:            it.OrderID,
		Amount:             parseDecimal(it.Amount),
		Date:               parseTime(it.Date),
		Status:             entities.PaymentStatus(it.Status),
		ProviderPayload:    it.ProviderPayload,
		ProviderPayloadRaw: []byte(it.ProviderPayloadRaw),
	}
}
