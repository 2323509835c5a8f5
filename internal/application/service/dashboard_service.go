package service

import (
	"context"
	"time"

	"github.com/kanhaiyya/billing-api/internal/domain/repository"
)

// DashboardService provides day-level sales statistics
type DashboardService struct {
	billRepo repository.BillRepository
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service. now may be nil, in
// which case the wall clock is used.
func NewDashboardService(billRepo repository.BillRepository, now func() time.Time) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{billRepo: billRepo, now: now}
}

// SummaryForDay aggregates bill count, gross and net totals for one calendar day
func (s *DashboardService) SummaryForDay(ctx context.Context, day time.Time) (*repository.SalesSummary, error) {
	return s.billRepo.SummaryForDay(ctx, day)
}

// SummaryToday aggregates the current day
func (s *DashboardService) SummaryToday(ctx context.Context) (*repository.SalesSummary, error) {
	return s.billRepo.SummaryForDay(ctx, s.now())
}
