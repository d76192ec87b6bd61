package request

import (
	"errors"
	"math"
	"testing"
)

func TestPixChargeRequest_Validate(t *testing.T) {
	valid := PixChargeRequest{Total: 25.9, OrderID: "order-1", RID: "rest-1"}

	t.Run("valid", func(t *testing.T) {
		if err := valid.Validate(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("non-positive total", func(t *testing.T) {
		for _, total := range []float64{0, -1} {
			r := valid
			r.Total = total
			if err := r.Validate(); !errors.Is(err, ErrInvalidTotal) {
				t.Fatalf("total=%v: expected ErrInvalidTotal, got %v", total, err)
			}
		}
	})

	t.Run("non-finite total", func(t *testing.T) {
		for _, total := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			r := valid
			r.Total = total
			if err := r.Validate(); !errors.Is(err, ErrInvalidTotal) {
				t.Fatalf("total=%v: expected ErrInvalidTotal, got %v", total, err)
			}
		}
	})

	t.Run("missing orderId", func(t *testing.T) {
		r := valid
		r.OrderID = "  "
		if err := r.Validate(); !errors.Is(err, ErrMissingOrderID) {
			t.Fatalf("expected ErrMissingOrderID, got %v", err)
		}
	})

	t.Run("missing rid", func(t *testing.T) {
		r := valid
		r.RID = ""
		if err := r.Validate(); !errors.Is(err, ErrMissingRestaurantID) {
			t.Fatalf("expected ErrMissingRestaurantID, got %v", err)
		}
	})
}

func TestPixChargeRequest_TotalCents(t *testing.T) {
	cases := []struct {
		total float64
		want  int64
	}{
		{25.9, 2590},
		{0.01, 1},
		{10.009999, 1001},
		{100, 10000},
	}
	for _, c := range cases {
		r := PixChargeRequest{Total: c.total}
		if got := r.TotalCents(); got != c.want {
			t.Fatalf("TotalCents(%v) = %d, want %d", c.total, got, c.want)
		}
	}
}
