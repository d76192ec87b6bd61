package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	response "cardapio_pix/internal/adapter/http/dto/response"
	"cardapio_pix/internal/usecase"
	"cardapio_pix/pkg"

	"github.com/gin-gonic/gin"
)

// WebhookHandler handles Mercado Pago payment notifications.
//
// Except for a shared-secret mismatch, every outcome answers HTTP 200 so the
// notifier never enters a retry storm; failures are logged instead.

type WebhookHandler struct {
	usecase usecase.IWebhookUseCase
	secret  string
}

func NewWebhookHandler(uc usecase.IWebhookUseCase, secret string) *WebhookHandler {
	return &WebhookHandler{usecase: uc, secret: secret}
}

// mpNotification covers the notification shapes Mercado Pago sends: webhook
// v2 bodies carry data.id, IPN-style ones a top-level id plus type/topic.
type mpNotification struct {
	ID     any    `json:"id"`
	Type   string `json:"type"`
	Topic  string `json:"topic"`
	Action string `json:"action"`
	Data   struct {
		ID any `json:"id"`
	} `json:"data"`
}

// HandleMercadoPago processes a payment notification.
//
// @Summary      Mercado Pago webhook
// @Description  Acknowledges and reconciles a payment notification. Status is always re-fetched from the processor.
// @Tags         webhook
// @Accept       json
// @Produce      json
// @Param        secret  query     string  false  "shared secret"
// @Success      200     {object}  response.WebhookAckResponse
// @Failure      401     {object}  pkg.HTTPError
// @Router       /webhook/mercadopago [post]
func (h *WebhookHandler) HandleMercadoPago(c *gin.Context) {
	if h.secret != "" && c.Query("secret") != h.secret {
		log.Printf("[webhook][handler] secret mismatch")
		appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid webhook secret", http.StatusUnauthorized)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	paymentID := h.extractPaymentID(c)
	if paymentID == "" {
		log.Printf("[webhook][handler] no payment id in notification; acknowledging")
		c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true, Ignored: true, Reason: "no payment id"})
		return
	}

	outcome, err := h.usecase.HandleNotification(c.Request.Context(), paymentID)
	if err != nil {
		// Acknowledged anyway: the notifier must not retry indefinitely.
		log.Printf("[webhook][handler] reconcile failed payment_id=%s err=%v", paymentID, err)
		c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true})
		return
	}

	if outcome.Ignored {
		c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true, Ignored: true, Reason: outcome.Reason})
		return
	}
	c.JSON(http.StatusOK, response.WebhookAckResponse{Received: true, Status: string(outcome.Status)})
}

// extractPaymentID pulls the payment identifier from the notification body or
// query string. Non-payment notification topics yield empty.
func (h *WebhookHandler) extractPaymentID(c *gin.Context) string {
	var n mpNotification
	if err := c.ShouldBindJSON(&n); err == nil {
		if id := notificationID(n.Data.ID); id != "" {
			return id
		}
		if n.Type == "payment" || n.Topic == "payment" || strings.HasPrefix(n.Action, "payment.") {
			if id := notificationID(n.ID); id != "" {
				return id
			}
		}
	}
	if id := strings.TrimSpace(c.Query("data.id")); id != "" {
		return id
	}
	if topic := c.Query("topic"); topic == "" || topic == "payment" {
		return strings.TrimSpace(c.Query("id"))
	}
	return ""
}

// notificationID normalizes the id field, which arrives either as a string or
// as a JSON number.
func notificationID(v any) string {
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return fmt.Sprintf("%.0f", id)
	case json.Number:
		return id.String()
	default:
		return ""
	}
}
