package payments

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

	"github.com/google/uuid"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoGateway creates PIX charges and reads authoritative payment
// state through the Mercado Pago SDK.
//
// Mock mode (PAYMENT_GATEWAY_MOCK / MERCADOPAGO_MOCK) synthesizes pending
// charges locally so the service runs without processor credentials.

type MercadoPagoGateway struct {
	client   payment.Client
	mockMode bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if MockModeEnabled() {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

func (g *MercadoPagoGateway) CreatePixCharge(ctx context.Context, req entities.PixChargeRequest) (entities.PixCharge, error) {
	if g != nil && g.mockMode {
		return g.mockCharge(strconv.FormatInt(time.Now().UTC().UnixNano(), 10), req), nil
	}
	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.PixCharge{}, ErrMercadoPagoGatewayNotConfigured
	}

	expiresAt := req.ExpiresAt
	mpReq := payment.Request{
		TransactionAmount: req.Amount(),
		Description:       req.Description,
		PaymentMethodID:   "pix",
		ExternalReference: req.OrderReference(),
		DateOfExpiration:  &expiresAt,
		Metadata: map[string]any{
			"rid":             req.RID,
			"order_id":        req.OrderID,
			"idempotency_key": req.IdempotencyKey,
		},
		Payer: buildPayer(req),
	}

	log.Printf("[payment][gateway] create start external_reference=%s amount=%.2f", mpReq.ExternalReference, mpReq.TransactionAmount)
	resp, err := g.client.Create(ctx, mpReq)
	if err != nil {
		log.Printf("[payment][gateway] sdk create failed err=%v", err)
		return entities.PixCharge{}, err
	}
	log.Printf("[payment][gateway] create success payment_id=%d status=%s", resp.ID, resp.Status)

	return chargeFromResponse(resp), nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (entities.PixCharge, error) {
	if g != nil && g.mockMode {
		return g.mockCharge(paymentID, entities.PixChargeRequest{ExpiresAt: time.Now().UTC().Add(30 * time.Minute)}), nil
	}
	if g == nil || g.client == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.PixCharge{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return entities.PixCharge{}, fmt.Errorf("invalid mercado pago payment id %q: %w", paymentID, err)
	}

	resp, err := g.client.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk get failed payment_id=%s err=%v", paymentID, err)
		return entities.PixCharge{}, err
	}
	log.Printf("[payment][gateway] get success payment_id=%d status=%s", resp.ID, resp.Status)

	return chargeFromResponse(resp), nil
}

func (g *MercadoPagoGateway) mockCharge(id string, req entities.PixChargeRequest) entities.PixCharge {
	code := uuid.NewString()
	log.Printf("[payment][gateway] mock charge payment_id=%s", id)
	return entities.PixCharge{
		PaymentID:         id,
		Status:            entities.PaymentStatusPending,
		StatusDetail:      "pending_waiting_transfer",
		DateOfExpiration:  req.ExpiresAt,
		ExternalReference: req.OrderReference(),
		Metadata: map[string]any{
			"rid":             req.RID,
			"order_id":        req.OrderID,
			"idempotency_key": req.IdempotencyKey,
		},
		QRCode:       "00020126mock" + code,
		QRCodeBase64: "bW9jay1xci1jb2RlLQ==",
		TicketURL:    "https://example.invalid/pix/" + id,
	}
}

func chargeFromResponse(resp *payment.Response) entities.PixCharge {
	return entities.PixCharge{
		PaymentID:         strconv.Itoa(resp.ID),
		Status:            entities.PaymentStatus(resp.Status),
		StatusDetail:      resp.StatusDetail,
		DateOfExpiration:  resp.DateOfExpiration,
		ExternalReference: resp.ExternalReference,
		Metadata:          resp.Metadata,
		QRCode:            resp.PointOfInteraction.TransactionData.QRCode,
		QRCodeBase64:      resp.PointOfInteraction.TransactionData.QRCodeBase64,
		TicketURL:         resp.PointOfInteraction.TransactionData.TicketURL,
	}
}

func buildPayer(req entities.PixChargeRequest) *payment.PayerRequest {
	payer := &payment.PayerRequest{
		Email:     payerEmail(),
		FirstName: req.PayerName,
	}
	if cpf := strings.TrimSpace(req.PayerCPF); cpf != "" {
		payer.Identification = &payment.IdentificationRequest{Type: "CPF", Number: cpf}
	}
	if phone := strings.TrimSpace(req.PayerPhone); phone != "" {
		payer.Phone = &payment.PhoneRequest{Number: phone}
	}
	return payer
}

// payerEmail resolves the payer email the PIX API requires. The public menu
// never collects one, so it comes from configuration, with the sandbox-safe
// fallback Mercado Pago recommends for TEST tokens.
func payerEmail() string {
	if email := strings.TrimSpace(os.Getenv("MERCADOPAGO_PAYER_EMAIL")); email != "" {
		return email
	}
	if strings.HasPrefix(strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")), "TEST-") {
		return "test_user_br@testuser.com"
	}
	return ""
}

// MockModeEnabled reports whether the gateway should run without calling
// Mercado Pago.
func MockModeEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
