package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"cardapio_pix/internal/domain/entities"
	"cardapio_pix/internal/usecase/interfaces"
)

var (
	ErrInvalidRestaurantID = errors.New("invalid rid")
	ErrInvalidOrderID      = errors.New("invalid orderId")
	ErrInvalidAmount       = errors.New("invalid total amount")
	ErrInvalidPaymentID    = errors.New("invalid payment id")
	ErrOrderAlreadyPaid    = errors.New("order already paid")
)

// ChargeRejectedError is returned when the processor creates the charge in a
// non-pending status. The QR payload of such a charge is never surfaced.
type ChargeRejectedError struct {
	PaymentID    string
	Status       entities.PaymentStatus
	StatusDetail string
}

func (e *ChargeRejectedError) Error() string {
	return fmt.Sprintf("charge not pending: payment_id=%s status=%s status_detail=%s", e.PaymentID, e.Status, e.StatusDetail)
}

// CreateChargeCommand is the validated input for charge creation.
type CreateChargeCommand struct {
	RID         string
	OrderID     string
	TotalCents  int64
	Description string
	PayerName   string
	PayerPhone  string
	PayerCPF    string
}

// ChargeResult is a processor charge plus the reuse marker. Reused is true
// when an existing pending, unexpired charge was returned instead of a fresh
// one.
type ChargeResult struct {
	entities.PixCharge
	Reused bool
}

// IPixChargeUseCase encapsulates PIX charge creation with duplicate-charge
// avoidance, plus the debug payment lookup.

type IPixChargeUseCase interface {
	CreateCharge(ctx context.Context, cmd CreateChargeCommand) (ChargeResult, error)
	GetPayment(ctx context.Context, paymentID string) (entities.PixCharge, error)
}

type PixChargeUseCase struct {
	repo    interfaces.IOrderRepository
	gateway interfaces.IPaymentGateway
	window  time.Duration
}

var _ IPixChargeUseCase = (*PixChargeUseCase)(nil)

func NewPixChargeUseCase(repo interfaces.IOrderRepository, gateway interfaces.IPaymentGateway) *PixChargeUseCase {
	return &PixChargeUseCase{
		repo:    repo,
		gateway: gateway,
		window:  expirationWindowFromEnv(),
	}
}

// CreateCharge creates a PIX charge for (rid, orderId), reusing an existing
// live charge when one is already persisted for the order.
//
// Reuse protocol: an approved existing charge rejects the request with
// ErrOrderAlreadyPaid; a pending, unexpired one is returned as-is with its
// mirror refreshed; a failed reuse lookup falls back to creating a fresh
// charge (fail-open, logged).
func (u *PixChargeUseCase) CreateCharge(ctx context.Context, cmd CreateChargeCommand) (ChargeResult, error) {
	cmd.RID = strings.TrimSpace(cmd.RID)
	cmd.OrderID = strings.TrimSpace(cmd.OrderID)
	log.Printf("[pix][usecase] create start rid=%s order_id=%s total_cents=%d", cmd.RID, cmd.OrderID, cmd.TotalCents)

	if cmd.RID == "" {
		return ChargeResult{}, ErrInvalidRestaurantID
	}
	if cmd.OrderID == "" {
		return ChargeResult{}, ErrInvalidOrderID
	}
	if cmd.TotalCents <= 0 {
		return ChargeResult{}, ErrInvalidAmount
	}
	if u.gateway == nil {
		return ChargeResult{}, errors.New("payment gateway not configured")
	}
	if u.repo == nil {
		return ChargeResult{}, errors.New("order repository not configured")
	}

	now := time.Now().UTC()

	if existing, ok, err := u.reusableCharge(ctx, cmd, now); err != nil {
		return ChargeResult{}, err
	} else if ok {
		return existing, nil
	}

	req := entities.PixChargeRequest{
		RID:            cmd.RID,
		OrderID:        cmd.OrderID,
		TotalCents:     cmd.TotalCents,
		Description:    cmd.Description,
		PayerName:      cmd.PayerName,
		PayerPhone:     cmd.PayerPhone,
		PayerCPF:       cmd.PayerCPF,
		IdempotencyKey: DeriveIdempotencyKey(cmd.RID, cmd.OrderID, cmd.TotalCents, now, u.window),
		ExpiresAt:      now.Add(u.window),
	}

	charge, err := u.gateway.CreatePixCharge(ctx, req)
	if err != nil {
		log.Printf("[pix][usecase] gateway create failed rid=%s order_id=%s err=%v", cmd.RID, cmd.OrderID, err)
		return ChargeResult{}, err
	}
	log.Printf("[pix][usecase] gateway create success rid=%s order_id=%s payment_id=%s status=%s", cmd.RID, cmd.OrderID, charge.PaymentID, charge.Status)

	if !charge.IsPending() {
		// Non-pending charges carry no usable QR payload and are not mirrored.
		return ChargeResult{}, &ChargeRejectedError{PaymentID: charge.PaymentID, Status: charge.Status, StatusDetail: charge.StatusDetail}
	}

	if err := u.repo.MergePayment(ctx, cmd.RID, cmd.OrderID, paymentRecordFromCharge(charge, cmd.RID, cmd.OrderID, now)); err != nil {
		log.Printf("[pix][usecase] mirror merge failed rid=%s order_id=%s payment_id=%s err=%v", cmd.RID, cmd.OrderID, charge.PaymentID, err)
		return ChargeResult{}, err
	}

	log.Printf("[pix][usecase] create success rid=%s order_id=%s payment_id=%s", cmd.RID, cmd.OrderID, charge.PaymentID)
	return ChargeResult{PixCharge: charge}, nil
}

// reusableCharge runs the existing-payment check. The returned bool is true
// when the caller should stop and use the result; ErrOrderAlreadyPaid is the
// only error path out of here.
func (u *PixChargeUseCase) reusableCharge(ctx context.Context, cmd CreateChargeCommand, now time.Time) (ChargeResult, bool, error) {
	rec, err := u.repo.GetPayment(ctx, cmd.RID, cmd.OrderID)
	if err != nil {
		log.Printf("[pix][usecase] reuse lookup (repo) failed rid=%s order_id=%s err=%v; creating new charge", cmd.RID, cmd.OrderID, err)
		return ChargeResult{}, false, nil
	}
	if rec.PaymentID == "" {
		return ChargeResult{}, false, nil
	}

	existing, err := u.gateway.GetPayment(ctx, rec.PaymentID)
	if err != nil {
		log.Printf("[pix][usecase] reuse lookup (gateway) failed rid=%s order_id=%s payment_id=%s err=%v; creating new charge", cmd.RID, cmd.OrderID, rec.PaymentID, err)
		return ChargeResult{}, false, nil
	}

	if existing.IsApproved() {
		log.Printf("[pix][usecase] order already paid rid=%s order_id=%s payment_id=%s", cmd.RID, cmd.OrderID, existing.PaymentID)
		return ChargeResult{}, false, ErrOrderAlreadyPaid
	}

	if existing.IsPending() && !existing.ExpiredAt(now) {
		if err := u.repo.MergePayment(ctx, cmd.RID, cmd.OrderID, paymentRecordFromCharge(existing, cmd.RID, cmd.OrderID, now)); err != nil {
			log.Printf("[pix][usecase] mirror refresh failed rid=%s order_id=%s payment_id=%s err=%v", cmd.RID, cmd.OrderID, existing.PaymentID, err)
		}
		log.Printf("[pix][usecase] reusing pending charge rid=%s order_id=%s payment_id=%s expires=%s", cmd.RID, cmd.OrderID, existing.PaymentID, existing.DateOfExpiration.Format(time.RFC3339))
		return ChargeResult{PixCharge: existing, Reused: true}, true, nil
	}

	log.Printf("[pix][usecase] existing charge not reusable rid=%s order_id=%s payment_id=%s status=%s", cmd.RID, cmd.OrderID, existing.PaymentID, existing.Status)
	return ChargeResult{}, false, nil
}

// GetPayment returns the processor's current view of a payment. Debug only.
func (u *PixChargeUseCase) GetPayment(ctx context.Context, paymentID string) (entities.PixCharge, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return entities.PixCharge{}, ErrInvalidPaymentID
	}
	if u.gateway == nil {
		return entities.PixCharge{}, errors.New("payment gateway not configured")
	}
	return u.gateway.GetPayment(ctx, paymentID)
}

func paymentRecordFromCharge(c entities.PixCharge, rid, orderID string, now time.Time) entities.PaymentRecord {
	return entities.PaymentRecord{
		PaymentID:        c.PaymentID,
		Status:           c.Status,
		StatusDetail:     c.StatusDetail,
		DateOfExpiration: c.DateOfExpiration,
		RID:              rid,
		OrderID:          orderID,
		UpdatedAt:        now,
	}
}

func expirationWindowFromEnv() time.Duration {
	v := strings.TrimSpace(os.Getenv("PIX_EXPIRATION_MINUTES"))
	if v == "" {
		return DefaultIdempotencyWindow
	}
	minutes, err := strconv.Atoi(v)
	if err != nil || minutes <= 0 {
		log.Printf("[pix][usecase] invalid PIX_EXPIRATION_MINUTES=%q; using default", v)
		return DefaultIdempotencyWindow
	}
	return time.Duration(minutes) * time.Minute
}
