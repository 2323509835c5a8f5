package service

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanhaiyya/billing-api/internal/config"
	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/internal/infrastructure/archive"
	"github.com/kanhaiyya/billing-api/pkg/apperror"
)

var testClock = func() time.Time {
	return time.Date(2026, 8, 28, 14, 30, 55, 0, time.UTC)
}

func newBillingFixture(t *testing.T, items ...entity.Item) (*BillingService, *CartService, *memBillRepo) {
	t.Helper()

	carts := NewCartService()
	billRepo := newMemBillRepo()
	store := config.StoreConfig{Name: "Kanhaiyya Snack Center", Currency: "₹"}
	svc := NewBillingService(
		newMemItemRepo(items...),
		billRepo,
		carts,
		archive.NewReceiptArchive(t.TempDir()),
		store,
		testClock,
	)
	return svc, carts, billRepo
}

func menuItems() []entity.Item {
	return []entity.Item{
		{Name: "Paneer Tikka", PricePaise: 5000},
		{Name: "Chai", PricePaise: 3000},
	}
}

func TestFinalizeRoundTrip(t *testing.T) {
	svc, carts, billRepo := newBillingFixture(t, menuItems()...)
	ctx := context.Background()

	require.NoError(t, carts.SetQuantity("5", "Paneer Tikka", 2))
	require.NoError(t, carts.SetQuantity("5", "Chai", 1))

	bill, err := svc.Finalize(ctx, &FinalizeInput{
		TableID:         "5",
		Mobile:          "9876543210",
		DiscountPercent: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(13000), bill.SubtotalPaise)
	assert.Equal(t, int64(11700), bill.NetTotalPaise)
	assert.NotEmpty(t, bill.BillNo)
	assert.Equal(t, testClock(), bill.IssuedAt)

	require.Len(t, bill.Lines, 2)
	assert.Equal(t, "Paneer Tikka", bill.Lines[0].ItemName)
	assert.Equal(t, int64(10000), bill.Lines[0].LineTotalPaise)
	assert.Equal(t, "Chai", bill.Lines[1].ItemName)
	assert.Equal(t, int64(3000), bill.Lines[1].LineTotalPaise)

	// Cart cleared, bill appended, receipt archived.
	assert.True(t, carts.Snapshot("5").Empty())
	assert.Equal(t, 1, billRepo.count())

	data, err := os.ReadFile(bill.ReceiptPath)
	require.NoError(t, err)
	assert.Equal(t, svc.ReceiptText(bill), string(data))
	assert.Contains(t, string(data), "Paneer Tikka  ₹50 x 2  =  ₹100")
	assert.Contains(t, string(data), "Net Total: ₹117")
}

func TestFinalizeEmptyCart(t *testing.T) {
	svc, _, billRepo := newBillingFixture(t, menuItems()...)

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		TableID:         "5",
		DiscountPercent: decimal.Zero,
	})

	assert.ErrorIs(t, err, apperror.ErrEmptyCart)
	assert.Equal(t, 0, billRepo.count())
}

func TestFinalizeUnknownItemLeavesCartIntact(t *testing.T) {
	svc, carts, billRepo := newBillingFixture(t, menuItems()...)

	require.NoError(t, carts.SetQuantity("5", "Chai", 1))
	require.NoError(t, carts.SetQuantity("5", "Off Menu Special", 1))

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		TableID:         "5",
		DiscountPercent: decimal.Zero,
	})

	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Contains(t, appErr.Message, "Off Menu Special")

	assert.Equal(t, 0, billRepo.count())
	assert.Len(t, carts.Snapshot("5").Lines, 2)
}

func TestFinalizeRejectsOutOfRangeDiscount(t *testing.T) {
	svc, carts, billRepo := newBillingFixture(t, menuItems()...)
	require.NoError(t, carts.SetQuantity("5", "Chai", 1))

	for _, percent := range []decimal.Decimal{
		decimal.NewFromInt(-1),
		decimal.NewFromInt(101),
		decimal.NewFromFloat(100.01),
	} {
		_, err := svc.Finalize(context.Background(), &FinalizeInput{
			TableID:         "5",
			DiscountPercent: percent,
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidDiscount, "discount %s", percent)
	}

	assert.Equal(t, 0, billRepo.count())
	assert.Len(t, carts.Snapshot("5").Lines, 1)
}

func TestFinalizeDiscountBoundaries(t *testing.T) {
	ctx := context.Background()

	svc, carts, _ := newBillingFixture(t, menuItems()...)
	require.NoError(t, carts.SetQuantity("5", "Chai", 2))
	bill, err := svc.Finalize(ctx, &FinalizeInput{TableID: "5", DiscountPercent: decimal.Zero})
	require.NoError(t, err)
	assert.Equal(t, bill.SubtotalPaise, bill.NetTotalPaise)

	require.NoError(t, carts.SetQuantity("6", "Chai", 2))
	bill, err = svc.Finalize(ctx, &FinalizeInput{TableID: "6", DiscountPercent: decimal.NewFromInt(100)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), bill.NetTotalPaise)
}

func TestFinalizeRetriesOnBillNoCollision(t *testing.T) {
	svc, carts, billRepo := newBillingFixture(t, menuItems()...)
	require.NoError(t, carts.SetQuantity("5", "Chai", 1))

	billRepo.collideNext = 2

	bill, err := svc.Finalize(context.Background(), &FinalizeInput{
		TableID:         "5",
		DiscountPercent: decimal.Zero,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, billRepo.count())
	assert.True(t, carts.Snapshot("5").Empty())
	assert.NotEmpty(t, bill.BillNo)
}

func TestFinalizeGivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, carts, billRepo := newBillingFixture(t, menuItems()...)
	require.NoError(t, carts.SetQuantity("5", "Chai", 1))

	billRepo.collideNext = billNoAttempts

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		TableID:         "5",
		DiscountPercent: decimal.Zero,
	})

	assert.ErrorIs(t, err, apperror.ErrBillCollision)
	assert.Equal(t, 0, billRepo.count())
	assert.Len(t, carts.Snapshot("5").Lines, 1)
}

func TestFinalizePersistenceFailureKeepsCart(t *testing.T) {
	svc, carts, billRepo := newBillingFixture(t, menuItems()...)
	require.NoError(t, carts.SetQuantity("5", "Chai", 1))

	billRepo.failNextCreates = 1

	_, err := svc.Finalize(context.Background(), &FinalizeInput{
		TableID:         "5",
		DiscountPercent: decimal.Zero,
	})

	require.Error(t, err)
	assert.Equal(t, 0, billRepo.count())
	assert.Len(t, carts.Snapshot("5").Lines, 1)

	// The cart survives the failure, so a retry succeeds.
	_, err = svc.Finalize(context.Background(), &FinalizeInput{
		TableID:         "5",
		DiscountPercent: decimal.Zero,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, billRepo.count())
}

func TestFinalizeConcurrentSameTableBillsOnce(t *testing.T) {
	svc, carts, billRepo := newBillingFixture(t, menuItems()...)
	require.NoError(t, carts.SetQuantity("5", "Paneer Tikka", 2))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Finalize(context.Background(), &FinalizeInput{
				TableID:         "5",
				DiscountPercent: decimal.Zero,
			})
		}(i)
	}
	wg.Wait()

	// One finalize wins; the other finds the cart empty.
	var succeeded, emptied int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case apperror.GetAppError(err) == apperror.ErrEmptyCart:
			emptied++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, emptied)
	assert.Equal(t, 1, billRepo.count())
}

func TestPreviewDoesNotTouchCartOrLedger(t *testing.T) {
	svc, carts, billRepo := newBillingFixture(t, menuItems()...)
	require.NoError(t, carts.SetQuantity("5", "Paneer Tikka", 2))
	require.NoError(t, carts.SetQuantity("5", "Chai", 1))

	bill, err := svc.Preview(context.Background(), "5", decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.Equal(t, int64(13000), bill.SubtotalPaise)
	assert.Equal(t, int64(11700), bill.NetTotalPaise)
	assert.Empty(t, bill.BillNo)

	assert.Equal(t, 0, billRepo.count())
	assert.Len(t, carts.Snapshot("5").Lines, 2)
}

func TestGetBillNotFound(t *testing.T) {
	svc, _, _ := newBillingFixture(t, menuItems()...)

	_, err := svc.GetBill(context.Background(), "BILL-00000000-000000-DEADBEEF")
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestSearchBillsByMobile(t *testing.T) {
	svc, carts, _ := newBillingFixture(t, menuItems()...)
	ctx := context.Background()

	require.NoError(t, carts.SetQuantity("1", "Chai", 1))
	_, err := svc.Finalize(ctx, &FinalizeInput{TableID: "1", Mobile: "9876543210", DiscountPercent: decimal.Zero})
	require.NoError(t, err)

	require.NoError(t, carts.SetQuantity("2", "Chai", 1))
	_, err = svc.Finalize(ctx, &FinalizeInput{TableID: "2", Mobile: "9123456780", DiscountPercent: decimal.Zero})
	require.NoError(t, err)

	result, err := svc.SearchBills(ctx, searchParams("", "9876543210"))
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "1", result.Items[0].TableID)
	assert.Equal(t, int64(1), result.Pagination.Total)
}
