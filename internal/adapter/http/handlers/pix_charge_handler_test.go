package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardapio_pix/internal/adapter/http/handlers/mocks"
	"cardapio_pix/internal/domain/entities"
	"cardapio_pix/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newPixRouter(h *PixChargeHandler) *gin.Engine {
	r := gin.New()
	r.POST("/pix", h.CreateCharge)
	r.GET("/payment/:id", h.GetPaymentByID)
	return r
}

func TestPixChargeHandler_CreateCharge(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		r := newPixRouter(NewPixChargeHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/pix", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("validation failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		r := newPixRouter(NewPixChargeHandler(uc))

		req := httptest.NewRequest(http.MethodPost, "/pix", bytes.NewBufferString(`{"total":0,"orderId":"order-1","rid":"rest-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("already paid conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		r := newPixRouter(NewPixChargeHandler(uc))

		uc.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).Return(usecase.ChargeResult{}, usecase.ErrOrderAlreadyPaid)

		req := httptest.NewRequest(http.MethodPost, "/pix", bytes.NewBufferString(`{"total":25.9,"orderId":"order-1","rid":"rest-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("non-pending charge returns rejection payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		r := newPixRouter(NewPixChargeHandler(uc))

		uc.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).Return(usecase.ChargeResult{}, &usecase.ChargeRejectedError{
			PaymentID:    "333",
			Status:       entities.PaymentStatusRejected,
			StatusDetail: "cc_rejected_other_reason",
		})

		req := httptest.NewRequest(http.MethodPost, "/pix", bytes.NewBufferString(`{"total":25.9,"orderId":"order-1","rid":"rest-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["status"] != "rejected" || body["payment_id"] != "333" || body["status_detail"] != "cc_rejected_other_reason" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if _, ok := body["qr_code"]; ok {
			t.Fatalf("rejection body must not carry a qr payload: %s", w.Body.String())
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		r := newPixRouter(NewPixChargeHandler(uc))

		var captured usecase.CreateChargeCommand
		uc.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, cmd usecase.CreateChargeCommand) (usecase.ChargeResult, error) {
				captured = cmd
				return usecase.ChargeResult{
					PixCharge: entities.PixCharge{
						PaymentID:        "222",
						Status:           entities.PaymentStatusPending,
						DateOfExpiration: time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC),
						QRCode:           "00020126qr",
						QRCodeBase64:     "cXI=",
					},
					Reused: true,
				}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/pix", bytes.NewBufferString(`{"total":25.9,"orderId":"order-1","rid":"rest-1","payerName":"Ana"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		if captured.TotalCents != 2590 || captured.RID != "rest-1" || captured.PayerName != "Ana" {
			t.Fatalf("unexpected command: %+v", captured)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "222" || body["status"] != "pending" || body["reused"] != true {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if body["qr_code"] != "00020126qr" {
			t.Fatalf("expected qr payload in body: %s", w.Body.String())
		}
	})
}

func TestPixChargeHandler_GetPaymentByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("processor 404 is propagated", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		r := newPixRouter(NewPixChargeHandler(uc))

		uc.EXPECT().GetPayment(gomock.Any(), "999").Return(entities.PixCharge{}, errors.New(`{"error":"not_found","message":"Payment not found","status":404}`))

		req := httptest.NewRequest(http.MethodGet, "/payment/999", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)
		r := newPixRouter(NewPixChargeHandler(uc))

		uc.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.PixCharge{
			PaymentID:         "123",
			Status:            entities.PaymentStatusApproved,
			StatusDetail:      "accredited",
			ExternalReference: "rest-1:order-1",
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/payment/123", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "123" || body["status"] != "approved" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestMapPixChargeError(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{usecase.ErrInvalidRestaurantID, http.StatusBadRequest},
		{usecase.ErrInvalidOrderID, http.StatusBadRequest},
		{usecase.ErrInvalidAmount, http.StatusBadRequest},
		{usecase.ErrOrderAlreadyPaid, http.StatusConflict},
		{errors.New(`{"error":"unauthorized","status":401}`), http.StatusUnauthorized},
		{errors.New("plain failure"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := mapPixChargeError(c.err); got.HTTPStatus != c.wantStatus {
			t.Fatalf("mapPixChargeError(%v) = %d, want %d", c.err, got.HTTPStatus, c.wantStatus)
		}
	}
}
