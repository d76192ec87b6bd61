package request

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidTotal        = errors.New("total must be a positive finite number")
	ErrMissingOrderID      = errors.New("orderId is required")
	ErrMissingRestaurantID = errors.New("rid is required")
)

// PixChargeRequest is the POST /pix payload. `total` is in reais; it is
// converted to minor units before anything touches the processor.

type PixChargeRequest struct {
	Total       float64 `json:"total"`
	Description string  `json:"description"`
	PayerName   string  `json:"payerName"`
	PayerPhone  string  `json:"payerPhone"`
	PayerCpf    string  `json:"payerCpf"`
	OrderID     string  `json:"orderId"`
	RID         string  `json:"rid"`
}

func (r PixChargeRequest) Validate() error {
	if r.Total <= 0 || math.IsNaN(r.Total) || math.IsInf(r.Total, 0) {
		return ErrInvalidTotal
	}
	if strings.TrimSpace(r.OrderID) == "" {
		return ErrMissingOrderID
	}
	if strings.TrimSpace(r.RID) == "" {
		return ErrMissingRestaurantID
	}
	return nil
}

// TotalCents converts the amount to minor units, rounding half away from
// zero to absorb float artifacts like 10.009999.
func (r PixChargeRequest) TotalCents() int64 {
	return int64(math.Round(r.Total * 100))
}
