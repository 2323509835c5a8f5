package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/kanhaiyya/billing-api/internal/config"
	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/internal/domain/repository"
	"github.com/kanhaiyya/billing-api/internal/infrastructure/archive"
	"github.com/kanhaiyya/billing-api/internal/infrastructure/spreadsheet"
	"github.com/kanhaiyya/billing-api/pkg/apperror"
	"github.com/kanhaiyya/billing-api/pkg/money"
	"github.com/kanhaiyya/billing-api/pkg/pagination"
	"github.com/kanhaiyya/billing-api/pkg/receipt"
	"github.com/kanhaiyya/billing-api/pkg/utils"
)

// billNoAttempts bounds the retries when a generated bill number collides.
const billNoAttempts = 3

// BillingService computes bill totals from a table's cart and finalizes
// them into the append-only ledger. A finalize is all-or-nothing: the bill
// row, its lines and the receipt file land together or not at all, and the
// cart is cleared only after the ledger append committed.
type BillingService struct {
	itemRepo repository.ItemRepository
	billRepo repository.BillRepository
	carts    *CartService
	archive  *archive.ReceiptArchive
	store    config.StoreConfig
	now      func() time.Time

	// One lock per table serializes concurrent finalizes so two waiters
	// cannot both bill the same cart; the loser finds it empty.
	mu     sync.Mutex
	tables map[string]*sync.Mutex
}

// NewBillingService creates a new billing service. now may be nil, in which
// case the wall clock is used.
func NewBillingService(
	itemRepo repository.ItemRepository,
	billRepo repository.BillRepository,
	carts *CartService,
	receiptArchive *archive.ReceiptArchive,
	store config.StoreConfig,
	now func() time.Time,
) *BillingService {
	if now == nil {
		now = time.Now
	}
	return &BillingService{
		itemRepo: itemRepo,
		billRepo: billRepo,
		carts:    carts,
		archive:  receiptArchive,
		store:    store,
		now:      now,
		tables:   make(map[string]*sync.Mutex),
	}
}

func (s *BillingService) tableLock(tableID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.tables[tableID]
	if !ok {
		lock = &sync.Mutex{}
		s.tables[tableID] = lock
	}
	return lock
}

// computeLines prices a cart snapshot against the catalog, keeping cart
// order. Any unknown item fails the whole computation.
func computeLines(snapshot entity.CartSnapshot, catalog *entity.Catalog) ([]entity.BillLine, int64, error) {
	lines := make([]entity.BillLine, 0, len(snapshot.Lines))
	var subtotal int64

	for i, cartLine := range snapshot.Lines {
		unitPrice, ok := catalog.Price(cartLine.ItemName)
		if !ok {
			return nil, 0, apperror.NewUnknownItemError(cartLine.ItemName)
		}
		lineTotal := money.LineTotal(unitPrice, cartLine.Quantity)
		lines = append(lines, entity.BillLine{
			Position:       i,
			ItemName:       cartLine.ItemName,
			UnitPricePaise: unitPrice,
			Quantity:       cartLine.Quantity,
			LineTotalPaise: lineTotal,
		})
		subtotal += lineTotal
	}

	return lines, subtotal, nil
}

// Preview computes the totals a finalize of this table would produce,
// without touching cart or ledger. The returned bill has no number and
// no ID; it exists only for display.
func (s *BillingService) Preview(ctx context.Context, tableID string, discountPercent decimal.Decimal) (*entity.Bill, error) {
	if !money.ValidDiscount(discountPercent) {
		return nil, apperror.ErrInvalidDiscount
	}

	snapshot := s.carts.Snapshot(tableID)
	if snapshot.Empty() {
		return nil, apperror.ErrEmptyCart
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	lines, subtotal, err := computeLines(snapshot, catalog)
	if err != nil {
		return nil, err
	}

	return &entity.Bill{
		TableID:         tableID,
		IssuedAt:        s.now(),
		SubtotalPaise:   subtotal,
		DiscountPercent: discountPercent,
		NetTotalPaise:   money.ApplyDiscount(subtotal, discountPercent),
		Lines:           lines,
	}, nil
}

// FinalizeInput carries everything a finalize needs beyond the cart itself.
type FinalizeInput struct {
	TableID         string
	Mobile          string
	DiscountPercent decimal.Decimal
}

// Finalize turns a table's cart into a permanent bill: it prices the cart
// against the current catalog, applies the discount, appends bill and lines
// to the ledger, archives the receipt file, and clears the cart. Every
// failure leaves cart and ledger exactly as they were.
func (s *BillingService) Finalize(ctx context.Context, input *FinalizeInput) (*entity.Bill, error) {
	if !money.ValidDiscount(input.DiscountPercent) {
		return nil, apperror.ErrInvalidDiscount
	}

	lock := s.tableLock(input.TableID)
	lock.Lock()
	defer lock.Unlock()

	snapshot := s.carts.Snapshot(input.TableID)
	if snapshot.Empty() {
		return nil, apperror.ErrEmptyCart
	}

	catalog, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	lines, subtotal, err := computeLines(snapshot, catalog)
	if err != nil {
		return nil, err
	}

	issuedAt := s.now()
	net := money.ApplyDiscount(subtotal, input.DiscountPercent)

	var bill *entity.Bill
	for attempt := 0; attempt < billNoAttempts; attempt++ {
		bill = &entity.Bill{
			BillNo:          utils.GenerateBillNo(issuedAt),
			TableID:         input.TableID,
			Mobile:          input.Mobile,
			IssuedAt:        issuedAt,
			SubtotalPaise:   subtotal,
			DiscountPercent: input.DiscountPercent,
			NetTotalPaise:   net,
			Lines:           cloneLines(lines),
		}
		bill.ReceiptPath = s.archive.Path(bill.BillNo, bill.TableID, bill.Mobile, issuedAt)

		err = s.billRepo.Create(ctx, bill, func(b *entity.Bill) error {
			// Runs inside the ledger transaction: a failed receipt write
			// rolls the whole append back.
			_, writeErr := s.archive.Write(b.BillNo, b.TableID, b.Mobile, b.IssuedAt, s.ReceiptText(b))
			return writeErr
		})
		if err == nil {
			break
		}
		if !errors.Is(err, apperror.ErrBillCollision) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	s.carts.Clear(input.TableID)
	return bill, nil
}

func cloneLines(lines []entity.BillLine) []entity.BillLine {
	out := make([]entity.BillLine, len(lines))
	copy(out, lines)
	return out
}

func (s *BillingService) loadCatalog(ctx context.Context) (*entity.Catalog, error) {
	items, err := s.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return entity.NewCatalog(items), nil
}

// ReceiptText renders the archived flat-text receipt for a bill.
func (s *BillingService) ReceiptText(bill *entity.Bill) string {
	r := receipt.Receipt{
		StoreName:       s.store.Name,
		Currency:        s.store.Currency,
		IssuedAt:        bill.IssuedAt,
		Table:           bill.TableID,
		Mobile:          bill.Mobile,
		SubtotalPaise:   bill.SubtotalPaise,
		DiscountPercent: bill.DiscountPercent,
		NetTotalPaise:   bill.NetTotalPaise,
	}
	for _, line := range bill.Lines {
		r.Lines = append(r.Lines, receipt.Line{
			Name:           line.ItemName,
			UnitPricePaise: line.UnitPricePaise,
			Quantity:       line.Quantity,
			LineTotalPaise: line.LineTotalPaise,
		})
	}
	return r.Render()
}

// GetBill retrieves a bill with its lines by bill number
func (s *BillingService) GetBill(ctx context.Context, billNo string) (*entity.Bill, error) {
	bill, err := s.billRepo.GetByBillNo(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// SearchBills searches the ledger by exact bill number and/or mobile
func (s *BillingService) SearchBills(ctx context.Context, params *repository.BillSearchParams) (*pagination.PaginatedResult[entity.Bill], error) {
	bills, total, err := s.billRepo.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// ExportBills builds a bill-register workbook for the bills matching the
// search filter.
func (s *BillingService) ExportBills(ctx context.Context, params *repository.BillSearchParams) (*excelize.File, error) {
	bills, _, err := s.billRepo.Search(ctx, params)
	if err != nil {
		return nil, err
	}
	return spreadsheet.BillsWorkbook(bills)
}
