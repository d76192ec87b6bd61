package repository

import (
	"context"
	"log"
	"time"

	"cardapio_pix/internal/domain/entities"
	"cardapio_pix/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultOrdersTableName             = "orders"
	defaultPublicOrdersTableName       = "public_orders"
	defaultLegacyOrdersTableName       = "orders_legacy"
	defaultLegacyPublicOrdersTableName = "public_orders_legacy"
)

type paymentRecordItem struct {
	PaymentID        string `dynamodbav:"payment_id"`
	Status           string `dynamodbav:"status"`
	StatusDetail     string `dynamodbav:"status_detail,omitempty"`
	DateOfExpiration string `dynamodbav:"date_of_expiration,omitempty"`
	RID              string `dynamodbav:"rid"`
	OrderID          string `dynamodbav:"orderId"`
	UpdatedAt        string `dynamodbav:"updatedAt"`
}

type orderItem struct {
	RID     string             `dynamodbav:"rid"`
	OrderID string             `dynamodbav:"order_id"`
	Status  string             `dynamodbav:"status,omitempty"`
	MP      *paymentRecordItem `dynamodbav:"mp,omitempty"`
	PaidAt  string             `dynamodbav:"paidAt,omitempty"`
}

// OrderDynamoRepository maintains the payment mirrors embedded in order
// documents.
//
// Table requirements:
//   - orders, public_orders: PK rid (string), SK order_id (string)
//   - orders_legacy, public_orders_legacy: PK order_id (string)
//
// All writes are UpdateItem SET expressions so the ordering system's own
// attributes on the same documents survive. Legacy tables exist for older
// clients that read unscoped paths; writes there are best-effort.

type OrderDynamoRepository struct {
	ddb               *dynamodb.Client
	ordersTable       string
	publicTable       string
	legacyOrdersTable string
	legacyPublicTable string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:               ddb,
		ordersTable:       getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
		publicTable:       getenvDefault("PUBLIC_ORDERS_TABLE", defaultPublicOrdersTableName),
		legacyOrdersTable: getenvDefault("LEGACY_ORDERS_TABLE", defaultLegacyOrdersTableName),
		legacyPublicTable: getenvDefault("LEGACY_PUBLIC_ORDERS_TABLE", defaultLegacyPublicOrdersTableName),
	}
}

func (r *OrderDynamoRepository) GetPayment(ctx context.Context, rid, orderID string) (entities.PaymentRecord, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.ordersTable),
		Key:            scopedKey(rid, orderID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentRecord{}, err
	}
	if len(out.Item) == 0 {
		return entities.PaymentRecord{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentRecord{}, err
	}
	if it.MP == nil {
		return entities.PaymentRecord{}, nil
	}
	return fromPaymentRecordItem(*it.MP), nil
}

// MergePayment writes the payment mirror under "mp" in the primary and public
// documents, plus the legacy unscoped mirrors.
func (r *OrderDynamoRepository) MergePayment(ctx context.Context, rid, orderID string, rec entities.PaymentRecord) error {
	mp, err := attributevalue.Marshal(toPaymentRecordItem(rec))
	if err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	expr := "SET #mp = :mp, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":mp":         mp,
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#mp":         "mp",
		"#updated_at": "updatedAt",
	}

	if err := r.updateScoped(ctx, rid, orderID, expr, vals, names); err != nil {
		return err
	}
	r.updateLegacy(ctx, orderID, expr, vals, names)
	return nil
}

// MarkOrderPaid promotes the order and stamps the payment moment in all
// document paths.
func (r *OrderDynamoRepository) MarkOrderPaid(ctx context.Context, rid, orderID string, status entities.OrderStatus, paidAt time.Time) error {
	expr := "SET #status = :status, #paid_at = :paid_at, #updated_at = :updated_at"
	vals := map[string]types.AttributeValue{
		":status":     &types.AttributeValueMemberS{Value: string(status)},
		":paid_at":    &types.AttributeValueMemberS{Value: paidAt.UTC().Format(time.RFC3339Nano)},
		":updated_at": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339Nano)},
	}
	names := map[string]string{
		"#status":     "status",
		"#paid_at":    "paidAt",
		"#updated_at": "updatedAt",
	}

	if err := r.updateScoped(ctx, rid, orderID, expr, vals, names); err != nil {
		return err
	}
	r.updateLegacy(ctx, orderID, expr, vals, names)
	return nil
}

func (r *OrderDynamoRepository) updateScoped(ctx context.Context, rid, orderID, expr string, vals map[string]types.AttributeValue, names map[string]string) error {
	for _, table := range []string{r.ordersTable, r.publicTable} {
		_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 aws.String(table),
			Key:                       scopedKey(rid, orderID),
			UpdateExpression:          aws.String(expr),
			ExpressionAttributeValues: vals,
			ExpressionAttributeNames:  names,
		})
		if err != nil {
			log.Printf("[orders][repo] update failed table=%s rid=%s order_id=%s err=%v", table, rid, orderID, err)
			return err
		}
	}
	return nil
}

// updateLegacy mirrors the same update into the unscoped tables. Failures are
// logged, never propagated: the legacy paths must not break reconciliation.
func (r *OrderDynamoRepository) updateLegacy(ctx context.Context, orderID, expr string, vals map[string]types.AttributeValue, names map[string]string) {
	for _, table := range []string{r.legacyOrdersTable, r.legacyPublicTable} {
		_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                 aws.String(table),
			Key:                       legacyKey(orderID),
			UpdateExpression:          aws.String(expr),
			ExpressionAttributeValues: vals,
			ExpressionAttributeNames:  names,
		})
		if err != nil {
			log.Printf("[orders][repo] legacy update failed table=%s order_id=%s err=%v", table, orderID, err)
		}
	}
}

func scopedKey(rid, orderID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"rid":      &types.AttributeValueMemberS{Value: rid},
		"order_id": &types.AttributeValueMemberS{Value: orderID},
	}
}

func legacyKey(orderID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"order_id": &types.AttributeValueMemberS{Value: orderID},
	}
}

func toPaymentRecordItem(rec entities.PaymentRecord) paymentRecordItem {
	it := paymentRecordItem{
		PaymentID:    rec.PaymentID,
		Status:       string(rec.Status),
		StatusDetail: rec.StatusDetail,
		RID:          rec.RID,
		OrderID:      rec.OrderID,
		UpdatedAt:    rec.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if !rec.DateOfExpiration.IsZero() {
		it.DateOfExpiration = rec.DateOfExpiration.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromPaymentRecordItem(it paymentRecordItem) entities.PaymentRecord {
	exp, _ := time.Parse(time.RFC3339Nano, it.DateOfExpiration)
	updated, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.PaymentRecord{
		PaymentID:        it.PaymentID,
		Status:           entities.PaymentStatus(it.Status),
		StatusDetail:     it.StatusDetail,
		DateOfExpiration: exp,
		RID:              it.RID,
		OrderID:          it.OrderID,
		UpdatedAt:        updated,
	}
}
