package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/pkg/pagination"
)

// BillSearchParams filters the ledger. BillNo and Mobile are exact matches,
// combined with logical AND when both are set.
type BillSearchParams struct {
	BillNo     string
	Mobile     string
	Pagination *pagination.PaginationParams
}

// SalesSummary aggregates the ledger for the dashboard
type SalesSummary struct {
	Bills      int64 `json:"bills"`
	GrossPaise int64 `json:"-"` // Stored in paise, excluded from JSON
	NetPaise   int64 `json:"-"` // Stored in paise, excluded from JSON
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (s SalesSummary) MarshalJSON() ([]byte, error) {
	type Alias SalesSummary
	return json.Marshal(&struct {
		Alias
		Gross float64 `json:"gross"`
		Net   float64 `json:"net"`
	}{
		Alias: Alias(s),
		Gross: float64(s.GrossPaise) / 100,
		Net:   float64(s.NetPaise) / 100,
	})
}

// BillRepository defines the interface for the append-only bill ledger.
// Create maps a bill-number unique violation to apperror.ErrBillCollision and
// any other write failure to a persistence error; on failure previously
// appended bills are unaffected.
type BillRepository interface {
	// Create appends the bill with its lines in one transaction.
	// beforeCommit, if non-nil, runs inside the transaction after the insert;
	// returning an error rolls the append back. The finalize flow uses it to
	// write the receipt file atomically with the ledger append.
	Create(ctx context.Context, bill *entity.Bill, beforeCommit func(*entity.Bill) error) error
	GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error)
	Search(ctx context.Context, params *BillSearchParams) ([]entity.Bill, int64, error)
	SummaryForDay(ctx context.Context, day time.Time) (*SalesSummary, error)
}
