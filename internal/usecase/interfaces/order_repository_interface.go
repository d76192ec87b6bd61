package interfaces

import (
	"context"
	"time"

	"cardapio_pix/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for order payment state.
//
// The service must be able to:
//   - read the payment mirror for an order (reuse check)
//   - merge a refreshed payment mirror into the primary, public and legacy
//     document paths without clobbering the ordering system's attributes
//   - promote an order once the processor reports the charge approved

type IOrderRepository interface {
	GetPayment(ctx context.Context, rid, orderID string) (entities.PaymentRecord, error)
	MergePayment(ctx context.Context, rid, orderID string, rec entities.PaymentRecord) error
	MarkOrderPaid(ctx context.Context, rid, orderID string, status entities.OrderStatus, paidAt time.Time) error
}
