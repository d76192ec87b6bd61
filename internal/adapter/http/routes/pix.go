package routes

import (
	"cardapio_pix/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPix     = "/pix"
	PathWebhook = "/webhook/mercadopago"
	PathPayment = "/payment"
)

func addPixRoutes(r *gin.Engine, pixHandler *handlers.PixChargeHandler, webhookHandler *handlers.WebhookHandler) {
	r.POST(PathPix, pixHandler.CreateCharge)
	r.POST(PathWebhook, webhookHandler.HandleMercadoPago)

	// Debug lookup of the processor's view of a payment.
	r.GET(PathPayment+"/:id", pixHandler.GetPaymentByID)
}
