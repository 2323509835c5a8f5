package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	domainRepo "github.com/kanhaiyya/billing-api/internal/domain/repository"
	"github.com/kanhaiyya/billing-api/pkg/apperror"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill ledger repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

// Create appends a bill and its lines in a single transaction. The
// beforeCommit hook runs after the inserts and can still roll the whole
// append back, which finalize uses to write the receipt file atomically
// with the ledger append.
func (r *billRepository) Create(ctx context.Context, bill *entity.Bill, beforeCommit func(*entity.Bill) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return err
		}
		if beforeCommit != nil {
			return beforeCommit(bill)
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.ErrBillCollision
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewPersistenceError(err)
}

func (r *billRepository) GetByBillNo(ctx context.Context, billNo string) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&bill, "bill_no = ?", billNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Search(ctx context.Context, params *domainRepo.BillSearchParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{})

	if params.BillNo != "" {
		query = query.Where("bill_no = ?", params.BillNo)
	}
	if params.Mobile != "" {
		query = query.Where("mobile = ?", params.Mobile)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("issued_at DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) SummaryForDay(ctx context.Context, day time.Time) (*domainRepo.SalesSummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var summary domainRepo.SalesSummary
	err := r.db.WithContext(ctx).Model(&entity.Bill{}).
		Select("COUNT(*) AS bills, COALESCE(SUM(subtotal_paise), 0) AS gross_paise, COALESCE(SUM(net_total_paise), 0) AS net_paise").
		Where("issued_at >= ? AND issued_at < ?", start, end).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
