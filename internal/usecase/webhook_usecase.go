package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cardapio_pix/internal/domain/entities"
	"cardapio_pix/internal/usecase/interfaces"
)

// WebhookOutcome describes how a notification was handled. Ignored outcomes
// are still acknowledged to the sender; only transport-level errors bubble up
// to the handler (which acknowledges them anyway).
type WebhookOutcome struct {
	Processed bool
	Ignored   bool
	Reason    string
	PaymentID string
	Status    entities.PaymentStatus
}

// IWebhookUseCase reconciles persisted order state with the processor's
// authoritative payment record.

type IWebhookUseCase interface {
	HandleNotification(ctx context.Context, paymentID string) (WebhookOutcome, error)
}

type WebhookUseCase struct {
	repo    interfaces.IOrderRepository
	gateway interfaces.IPaymentGateway
}

var _ IWebhookUseCase = (*WebhookUseCase)(nil)

func NewWebhookUseCase(repo interfaces.IOrderRepository, gateway interfaces.IPaymentGateway) *WebhookUseCase {
	return &WebhookUseCase{repo: repo, gateway: gateway}
}

// HandleNotification re-fetches the payment by id and merges its state into
// the order documents. The notification body is never trusted for status or
// order identity; everything is read back from the processor. Re-delivery and
// reordering are safe: the merge is idempotent.
func (u *WebhookUseCase) HandleNotification(ctx context.Context, paymentID string) (WebhookOutcome, error) {
	paymentID = strings.TrimSpace(paymentID)
	log.Printf("[webhook][usecase] notification start payment_id=%s", paymentID)
	if paymentID == "" {
		return WebhookOutcome{Ignored: true, Reason: "missing payment id"}, nil
	}
	if u.gateway == nil {
		return WebhookOutcome{}, errors.New("payment gateway not configured")
	}
	if u.repo == nil {
		return WebhookOutcome{}, errors.New("order repository not configured")
	}

	charge, err := u.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		log.Printf("[webhook][usecase] payment fetch failed payment_id=%s err=%v", paymentID, err)
		return WebhookOutcome{}, fmt.Errorf("fetching payment %s: %w", paymentID, err)
	}

	rid, orderID := resolveOrderRef(charge)
	if rid == "" || orderID == "" {
		log.Printf("[webhook][usecase] no order reference payment_id=%s external_reference=%q; ignoring", paymentID, charge.ExternalReference)
		return WebhookOutcome{Ignored: true, Reason: "no order reference", PaymentID: paymentID}, nil
	}

	now := time.Now().UTC()
	if err := u.repo.MergePayment(ctx, rid, orderID, paymentRecordFromCharge(charge, rid, orderID, now)); err != nil {
		log.Printf("[webhook][usecase] merge failed rid=%s order_id=%s payment_id=%s err=%v", rid, orderID, paymentID, err)
		return WebhookOutcome{}, err
	}

	if charge.IsApproved() {
		if err := u.repo.MarkOrderPaid(ctx, rid, orderID, entities.OrderStatusEmPreparo, now); err != nil {
			log.Printf("[webhook][usecase] paid promotion failed rid=%s order_id=%s payment_id=%s err=%v", rid, orderID, paymentID, err)
			return WebhookOutcome{}, err
		}
		log.Printf("[webhook][usecase] order promoted rid=%s order_id=%s payment_id=%s status=%s", rid, orderID, paymentID, entities.OrderStatusEmPreparo)
	}

	log.Printf("[webhook][usecase] reconciled rid=%s order_id=%s payment_id=%s status=%s", rid, orderID, paymentID, charge.Status)
	return WebhookOutcome{Processed: true, PaymentID: charge.PaymentID, Status: charge.Status}, nil
}

// resolveOrderRef extracts (rid, orderId) from the processor record only:
// metadata first, external_reference as fallback.
func resolveOrderRef(c entities.PixCharge) (rid, orderID string) {
	rid = metadataString(c.Metadata, "rid")
	orderID = metadataString(c.Metadata, "order_id")
	if rid != "" && orderID != "" {
		return rid, orderID
	}
	return entities.ParseOrderReference(c.ExternalReference)
}

func metadataString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
