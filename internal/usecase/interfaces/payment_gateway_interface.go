package interfaces

import (
	"context"

	"cardapio_pix/internal/domain/entities"
)

// IPaymentGateway abstracts the Mercado Pago payment API.
//
// GetPayment is the authoritative read: both the reuse check and the webhook
// reconciler re-fetch the payment by id instead of trusting anything else.
type IPaymentGateway interface {
	CreatePixCharge(ctx context.Context, req entities.PixChargeRequest) (entities.PixCharge, error)
	GetPayment(ctx context.Context, paymentID string) (entities.PixCharge, error)
}
