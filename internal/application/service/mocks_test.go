package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/internal/domain/repository"
	"github.com/kanhaiyya/billing-api/pkg/apperror"
	"github.com/kanhaiyya/billing-api/pkg/pagination"
)

// memItemRepo is an in-memory ItemRepository for tests.
type memItemRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Item
}

func newMemItemRepo(items ...entity.Item) *memItemRepo {
	r := &memItemRepo{items: make(map[string]*entity.Item)}
	for i := range items {
		item := items[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.items[item.Name] = &item
	}
	return r
}

func (r *memItemRepo) Create(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.Name] = item
	return nil
}

func (r *memItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetByName(ctx context.Context, name string) (*entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[name], nil
}

func (r *memItemRepo) List(ctx context.Context) ([]entity.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, nil
}

func (r *memItemRepo) Update(ctx context.Context, item *entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, existing := range r.items {
		if existing.ID == item.ID && name != item.Name {
			delete(r.items, name)
			break
		}
	}
	r.items[item.Name] = item
	return nil
}

func (r *memItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, item := range r.items {
		if item.ID == id {
			delete(r.items, name)
			return nil
		}
	}
	return nil
}

func (r *memItemRepo) UpsertBatch(ctx context.Context, items []entity.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range items {
		item := items[i]
		if existing, ok := r.items[item.Name]; ok {
			existing.PricePaise = item.PricePaise
			continue
		}
		item.ID = uuid.New()
		r.items[item.Name] = &item
	}
	return nil
}

// memBillRepo is an in-memory BillRepository. It enforces bill number
// uniqueness the way the database unique index does and can inject
// collisions and write failures.
type memBillRepo struct {
	mu    sync.Mutex
	bills []*entity.Bill
	byNo  map[string]*entity.Bill

	failNextCreates int // pending Creates that fail with a write error
	collideNext     int // pending Creates that report a bill number collision
}

func newMemBillRepo() *memBillRepo {
	return &memBillRepo{byNo: make(map[string]*entity.Bill)}
}

func (r *memBillRepo) Create(ctx context.Context, bill *entity.Bill, beforeCommit func(*entity.Bill) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failNextCreates > 0 {
		r.failNextCreates--
		return apperror.NewPersistenceError(context.DeadlineExceeded)
	}
	if r.collideNext > 0 {
		r.collideNext--
		return apperror.ErrBillCollision
	}
	if _, exists := r.byNo[bill.BillNo]; exists {
		return apperror.ErrBillCollision
	}

	if beforeCommit != nil {
		if err := beforeCommit(bill); err != nil {
			if apperror.IsAppError(err) {
				return err
			}
			return apperror.NewPersistenceError(err)
		}
	}

	stored := *bill
	r.bills = append(r.bills, &stored)
	r.byNo[bill.BillNo] = &stored
	return nil
}

func (r *memBillRepo) GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byNo[billNo], nil
}

func (r *memBillRepo) Search(ctx context.Context, params *repository.BillSearchParams) ([]entity.Bill, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Bill
	for _, bill := range r.bills {
		if params.BillNo != "" && bill.BillNo != params.BillNo {
			continue
		}
		if params.Mobile != "" && bill.Mobile != params.Mobile {
			continue
		}
		out = append(out, *bill)
	}
	return out, int64(len(out)), nil
}

func (r *memBillRepo) SummaryForDay(ctx context.Context, day time.Time) (*repository.SalesSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	summary := &repository.SalesSummary{}
	for _, bill := range r.bills {
		if bill.IssuedAt.Before(start) || !bill.IssuedAt.Before(end) {
			continue
		}
		summary.Bills++
		summary.GrossPaise += bill.SubtotalPaise
		summary.NetPaise += bill.NetTotalPaise
	}
	return summary, nil
}

func (r *memBillRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bills)
}

func searchParams(billNo, mobile string) *repository.BillSearchParams {
	return &repository.BillSearchParams{
		BillNo:     billNo,
		Mobile:     mobile,
		Pagination: pagination.DefaultPagination(),
	}
}
