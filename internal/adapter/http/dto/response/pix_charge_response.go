package response

import (
	"time"

	"cardapio_pix/internal/domain/entities"
)

// PixChargeResponse is the POST /pix success body. The QR payload is present
// only because the charge is pending; non-pending charges never reach this
// mapping.

type PixChargeResponse struct {
	PaymentID        string `json:"payment_id"`
	Status           string `json:"status"`
	DateOfExpiration string `json:"date_of_expiration,omitempty"`
	QRCode           string `json:"qr_code"`
	QRCodeBase64     string `json:"qr_code_base64"`
	TicketURL        string `json:"ticket_url,omitempty"`
	Reused           bool   `json:"reused"`
}

func FromPixCharge(c entities.PixCharge, reused bool) PixChargeResponse {
	res := PixChargeResponse{
		PaymentID:    c.PaymentID,
		Status:       string(c.Status),
		QRCode:       c.QRCode,
		QRCodeBase64: c.QRCodeBase64,
		TicketURL:    c.TicketURL,
		Reused:       reused,
	}
	if !c.DateOfExpiration.IsZero() {
		res.DateOfExpiration = c.DateOfExpiration.UTC().Format(time.RFC3339)
	}
	return res
}

// PaymentResponse is the GET /payment/:id debug body: the processor's current
// view of a payment, without the QR payload gating applied to /pix.
type PaymentResponse struct {
	PaymentID         string         `json:"payment_id"`
	Status            string         `json:"status"`
	StatusDetail      string         `json:"status_detail,omitempty"`
	DateOfExpiration  string         `json:"date_of_expiration,omitempty"`
	ExternalReference string         `json:"external_reference,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
}

func FromPayment(c entities.PixCharge) PaymentResponse {
	res := PaymentResponse{
		PaymentID:         c.PaymentID,
		Status:            string(c.Status),
		StatusDetail:      c.StatusDetail,
		ExternalReference: c.ExternalReference,
		Metadata:          c.Metadata,
	}
	if !c.DateOfExpiration.IsZero() {
		res.DateOfExpiration = c.DateOfExpiration.UTC().Format(time.RFC3339)
	}
	return res
}

// WebhookAckResponse acknowledges a notification. It is returned with HTTP
// 200 for every outcome except a secret mismatch.
type WebhookAckResponse struct {
	Received bool   `json:"received"`
	Ignored  bool   `json:"ignored,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Status   string `json:"status,omitempty"`
}

// HealthResponse is the GET / body.
type HealthResponse struct {
	OK       bool   `json:"ok"`
	Service  string `json:"service"`
	MockMode bool   `json:"mock_mode,omitempty"`
}
