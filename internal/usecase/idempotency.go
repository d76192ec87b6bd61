package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// DefaultIdempotencyWindow is the time bucket used when deriving idempotency
// keys. It matches the PIX charge expiration horizon so a key always outlives
// the charge it deduplicates; once the charge expires the bucket has rolled
// over and a fresh key (and charge) is allowed.
const DefaultIdempotencyWindow = 30 * time.Minute

// DeriveIdempotencyKey produces a deterministic fixed-length key from the
// charge identity and a coarse time bucket. Identical inputs within the same
// window always derive the same key; changing any input, including crossing a
// window boundary, derives a different one.
func DeriveIdempotencyKey(rid, orderID string, totalCents int64, at time.Time, window time.Duration) string {
	if window <= 0 {
		window = DefaultIdempotencyWindow
	}
	bucket := at.Unix() / int64(window.Seconds())
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d|%d", rid, orderID, totalCents, bucket))
	return hex.EncodeToString(sum[:])
}
