package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateBillNo builds a bill number from the finalize time plus a random
// suffix, e.g. "BILL-20260828-143055-3F9A2C1B". The timestamp keeps numbers
// sortable and human-readable; the suffix keeps two finalizations within the
// same second from colliding. Uniqueness is still enforced by the ledger's
// unique index, so a duplicate is detected and regenerated rather than stored.
func GenerateBillNo(at time.Time) string {
	return "BILL-" + at.Format("20060102-150405") + "-" + strings.ToUpper(uuid.New().String()[:8])
}
