package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cardapio_pix/internal/domain/entities"
	mock_interfaces "cardapio_pix/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestWebhookUseCase_HandleNotification(t *testing.T) {
	t.Run("empty payment id is ignored", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, gateway)

		outcome, err := uc.HandleNotification(context.Background(), "  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !outcome.Ignored || outcome.Processed {
			t.Fatalf("expected ignored outcome, got %+v", outcome)
		}
	})

	t.Run("gateway fetch failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, gateway)

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.PixCharge{}, errors.New("mp down"))

		_, err := uc.HandleNotification(context.Background(), "123")
		if err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("no order reference is acknowledged without writes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, gateway)

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.PixCharge{
			PaymentID: "123",
			Status:    entities.PaymentStatusApproved,
		}, nil)
		// No repo expectations: nothing may be written.

		outcome, err := uc.HandleNotification(context.Background(), "123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !outcome.Ignored || outcome.Processed {
			t.Fatalf("expected ignored outcome, got %+v", outcome)
		}
	})

	t.Run("pending payment merges without promotion", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, gateway)

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.PixCharge{
			PaymentID: "123",
			Status:    entities.PaymentStatusPending,
			Metadata:  map[string]any{"rid": "rest-1", "order_id": "order-1"},
		}, nil)
		repo.EXPECT().MergePayment(gomock.Any(), "rest-1", "order-1", gomock.Any()).Return(nil)
		// No MarkOrderPaid expectation: only approved promotes.

		outcome, err := uc.HandleNotification(context.Background(), "123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !outcome.Processed || outcome.Status != entities.PaymentStatusPending {
			t.Fatalf("unexpected outcome: %+v", outcome)
		}
	})

	t.Run("approved payment promotes the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, gateway)

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.PixCharge{
			PaymentID: "123",
			Status:    entities.PaymentStatusApproved,
			Metadata:  map[string]any{"rid": "rest-1", "order_id": "order-1"},
		}, nil)

		var mirrored entities.PaymentRecord
		repo.EXPECT().MergePayment(gomock.Any(), "rest-1", "order-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _ string, rec entities.PaymentRecord) error {
				mirrored = rec
				return nil
			})

		var paidAt time.Time
		repo.EXPECT().MarkOrderPaid(gomock.Any(), "rest-1", "order-1", entities.OrderStatusEmPreparo, gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _ string, _ entities.OrderStatus, at time.Time) error {
				paidAt = at
				return nil
			})

		outcome, err := uc.HandleNotification(context.Background(), "123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !outcome.Processed || outcome.Status != entities.PaymentStatusApproved {
			t.Fatalf("unexpected outcome: %+v", outcome)
		}
		if mirrored.Status != entities.PaymentStatusApproved || mirrored.PaymentID != "123" {
			t.Fatalf("unexpected mirror: %+v", mirrored)
		}
		if paidAt.IsZero() {
			t.Fatalf("expected paid-at stamp")
		}
	})

	t.Run("falls back to external_reference for order identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, gateway)

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.PixCharge{
			PaymentID:         "123",
			Status:            entities.PaymentStatusPending,
			ExternalReference: "rest-9:order-9",
		}, nil)
		repo.EXPECT().MergePayment(gomock.Any(), "rest-9", "order-9", gomock.Any()).Return(nil)

		outcome, err := uc.HandleNotification(context.Background(), "123")
		if err != nil || !outcome.Processed {
			t.Fatalf("unexpected outcome: %+v err=%v", outcome, err)
		}
	})

	t.Run("merge failure propagates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIOrderRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewWebhookUseCase(repo, gateway)

		gateway.EXPECT().GetPayment(gomock.Any(), "123").Return(entities.PixCharge{
			PaymentID: "123",
			Status:    entities.PaymentStatusApproved,
			Metadata:  map[string]any{"rid": "rest-1", "order_id": "order-1"},
		}, nil)
		repo.EXPECT().MergePayment(gomock.Any(), "rest-1", "order-1", gomock.Any()).Return(errors.New("db write failed"))

		_, err := uc.HandleNotification(context.Background(), "123")
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestResolveOrderRef(t *testing.T) {
	cases := []struct {
		name      string
		charge    entities.PixCharge
		wantRID   string
		wantOrder string
	}{
		{
			name:      "metadata wins",
			charge:    entities.PixCharge{Metadata: map[string]any{"rid": "rest-1", "order_id": "order-1"}, ExternalReference: "other:ref"},
			wantRID:   "rest-1",
			wantOrder: "order-1",
		},
		{
			name:      "external reference fallback",
			charge:    entities.PixCharge{ExternalReference: "rest-2:order-2"},
			wantRID:   "rest-2",
			wantOrder: "order-2",
		},
		{
			name:   "partial metadata falls through to reference",
			charge: entities.PixCharge{Metadata: map[string]any{"rid": "rest-1"}},
		},
		{
			name:   "malformed reference",
			charge: entities.PixCharge{ExternalReference: "no-separator"},
		},
		{
			name:   "non-string metadata values",
			charge: entities.PixCharge{Metadata: map[string]any{"rid": 7, "order_id": true}},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rid, orderID := resolveOrderRef(c.charge)
			if rid != c.wantRID || orderID != c.wantOrder {
				t.Fatalf("resolveOrderRef() = (%q, %q), want (%q, %q)", rid, orderID, c.wantRID, c.wantOrder)
			}
		})
	}
}
