package entities

import (
	"strings"
	"time"
)

// OrderStatus is the order lifecycle as seen by this service.
//
// Orders are created by the ordering system; cardapio-pix only promotes an
// order to "em_preparo" once Mercado Pago reports the PIX charge approved.

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusEmPreparo OrderStatus = "em_preparo"
)

// PaymentStatus mirrors the Mercado Pago payment status verbatim.
//
// This service never invents a status: every value persisted or surfaced to a
// caller was read from the processor's payment resource.

type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "pending"
	PaymentStatusApproved    PaymentStatus = "approved"
	PaymentStatusInProcess   PaymentStatus = "in_process"
	PaymentStatusRejected    PaymentStatus = "rejected"
	PaymentStatusCancelled   PaymentStatus = "cancelled"
	PaymentStatusRefunded    PaymentStatus = "refunded"
	PaymentStatusChargedBack PaymentStatus = "charged_back"
)

// PaymentRecord is the persisted mirror of a Mercado Pago payment, embedded
// in the order document under the "mp" attribute.
//
// Storage model (DynamoDB):
//   - orders / public_orders: PK rid (S), SK order_id (S)
//   - legacy unscoped mirrors: PK order_id (S)

type PaymentRecord struct {
	PaymentID        string        `json:"payment_id"`
	Status           PaymentStatus `json:"status"`
	StatusDetail     string        `json:"status_detail,omitempty"`
	DateOfExpiration time.Time     `json:"date_of_expiration,omitempty"`
	RID              string        `json:"rid"`
	OrderID          string        `json:"orderId"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// Order is the order document as this service reads/merges it. Attributes
// outside this struct belong to the ordering system and survive merge-writes.
type Order struct {
	RID       string        `json:"rid"`
	OrderID   string        `json:"order_id"`
	Status    OrderStatus   `json:"status,omitempty"`
	MP        PaymentRecord `json:"mp"`
	UpdatedAt time.Time     `json:"updatedAt,omitempty"`
	PaidAt    *time.Time    `json:"paidAt,omitempty"`
}

// PixCharge is the processor's view of a payment, as returned by the Mercado
// Pago API. The QR payload is only usable while Status is pending.
type PixCharge struct {
	PaymentID         string
	Status            PaymentStatus
	StatusDetail      string
	DateOfExpiration  time.Time
	ExternalReference string
	Metadata          map[string]any
	QRCode            string
	QRCodeBase64      string
	TicketURL         string
}

// PixChargeRequest carries everything the gateway needs to create a charge.
type PixChargeRequest struct {
	RID            string
	OrderID        string
	TotalCents     int64
	Description    string
	PayerName      string
	PayerPhone     string
	PayerCPF       string
	IdempotencyKey string
	ExpiresAt      time.Time
}

// Amount converts the minor-unit total into the float amount the processor
// API expects.
func (r PixChargeRequest) Amount() float64 {
	return float64(r.TotalCents) / 100
}

// OrderReference is the external_reference sent to the processor, used by the
// webhook reconciler to correlate a payment back to (rid, orderId).
func (r PixChargeRequest) OrderReference() string {
	return r.RID + ":" + r.OrderID
}

// ParseOrderReference splits an external_reference back into (rid, orderId).
// Returns empty strings when the reference does not carry both parts.
func ParseOrderReference(ref string) (rid, orderID string) {
	parts := strings.SplitN(ref, ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	rid = strings.TrimSpace(parts[0])
	orderID = strings.TrimSpace(parts[1])
	if rid == "" || orderID == "" {
		return "", ""
	}
	return rid, orderID
}

// IsPending reports whether the charge still awaits payment.
func (c PixCharge) IsPending() bool { return c.Status == PaymentStatusPending }

// IsApproved reports whether the charge was paid.
func (c PixCharge) IsApproved() bool { return c.Status == PaymentStatusApproved }

// ExpiredAt reports whether the charge expiration has passed at the given
// instant. A zero expiration is treated as expired so a stale mirror without
// one never short-circuits a fresh charge.
func (c PixCharge) ExpiredAt(now time.Time) bool {
	return c.DateOfExpiration.IsZero() || !c.DateOfExpiration.After(now)
}
