package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	request "cardapio_pix/internal/adapter/http/dto/request"
	response "cardapio_pix/internal/adapter/http/dto/response"
	"cardapio_pix/internal/usecase"
	"cardapio_pix/pkg"

	"github.com/gin-gonic/gin"
)

// PixChargeHandler handles HTTP requests for PIX charge creation and the
// payment debug lookup.

type PixChargeHandler struct {
	usecase usecase.IPixChargeUseCase
}

func NewPixChargeHandler(uc usecase.IPixChargeUseCase) *PixChargeHandler {
	return &PixChargeHandler{usecase: uc}
}

// CreateCharge creates (or reuses) a PIX charge for an order.
//
// @Summary      Create PIX charge
// @Description  Creates a PIX charge for (rid, orderId), reusing a live pending charge when one exists.
// @Tags         pix
// @Accept       json
// @Produce      json
// @Param        charge  body      request.PixChargeRequest  true  "charge input"
// @Success      200     {object}  response.PixChargeResponse
// @Failure      400     {object}  pkg.HTTPError
// @Failure      409     {object}  pkg.HTTPError
// @Router       /pix [post]
func (h *PixChargeHandler) CreateCharge(c *gin.Context) {
	var payload request.PixChargeRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[pix][handler] invalid body err=%v", err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request body", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if err := payload.Validate(); err != nil {
		log.Printf("[pix][handler] invalid payload rid=%s order_id=%s err=%v", payload.RID, payload.OrderID, err)
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result, err := h.usecase.CreateCharge(c.Request.Context(), usecase.CreateChargeCommand{
		RID:         payload.RID,
		OrderID:     payload.OrderID,
		TotalCents:  payload.TotalCents(),
		Description: payload.Description,
		PayerName:   payload.PayerName,
		PayerPhone:  payload.PayerPhone,
		PayerCPF:    payload.PayerCpf,
	})
	if err != nil {
		var rejected *usecase.ChargeRejectedError
		if errors.As(err, &rejected) {
			log.Printf("[pix][handler] charge rejected rid=%s order_id=%s payment_id=%s status=%s", payload.RID, payload.OrderID, rejected.PaymentID, rejected.Status)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":         "charge was not created in pending status",
				"status":        rejected.Status,
				"status_detail": rejected.StatusDetail,
				"payment_id":    rejected.PaymentID,
			})
			return
		}
		log.Printf("[pix][handler] create failed rid=%s order_id=%s err=%v", payload.RID, payload.OrderID, err)
		appErr := mapPixChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	log.Printf("[pix][handler] create success rid=%s order_id=%s payment_id=%s reused=%t", payload.RID, payload.OrderID, result.PaymentID, result.Reused)
	c.JSON(http.StatusOK, response.FromPixCharge(result.PixCharge, result.Reused))
}

// GetPaymentByID returns the processor's current view of a payment.
//
// @Summary      Payment debug lookup
// @Tags         pix
// @Produce      json
// @Param        id   path      string  true  "processor payment id"
// @Success      200  {object}  response.PaymentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /payment/{id} [get]
func (h *PixChargeHandler) GetPaymentByID(c *gin.Context) {
	id := c.Param("id")
	log.Printf("[pix][handler] payment lookup payment_id=%s", id)

	charge, err := h.usecase.GetPayment(c.Request.Context(), id)
	if err != nil {
		log.Printf("[pix][handler] payment lookup failed payment_id=%s err=%v", id, err)
		appErr := mapPixChargeError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPayment(charge))
}

func mapPixChargeError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidRestaurantID),
		errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidAmount),
		errors.Is(err, usecase.ErrInvalidPaymentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOrderAlreadyPaid):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_PAID", "Order already has an approved payment", http.StatusConflict)
	default:
		if status := processorStatusCode(err); status != 0 {
			return pkg.NewDomainError("PAYMENT_PROVIDER_ERROR", fmt.Sprintf("Payment provider error: %v", err), err, status)
		}
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

// processorStatusCode sniffs the HTTP status Mercado Pago reported from the
// SDK error body. Returns 0 when the error carries none.
func processorStatusCode(err error) int {
	if err == nil {
		return 0
	}
	msg := strings.ToLower(err.Error())
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusConflict, http.StatusUnprocessableEntity, http.StatusTooManyRequests} {
		if strings.Contains(msg, fmt.Sprintf("\"status\":%d", status)) || strings.Contains(msg, fmt.Sprintf("\"status\": %d", status)) {
			return status
		}
	}
	return 0
}
