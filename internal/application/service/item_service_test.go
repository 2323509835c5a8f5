package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/pkg/apperror"
)

func priceList(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Item", "Price"}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestCreateItemRejectsDuplicateName(t *testing.T) {
	svc := NewItemService(newMemItemRepo(entity.Item{Name: "Chai", PricePaise: 3000}))

	_, err := svc.CreateItem(context.Background(), &CreateItemInput{
		Name:  "Chai",
		Price: decimal.NewFromInt(40),
	})

	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestCreateItemStoresPaise(t *testing.T) {
	svc := NewItemService(newMemItemRepo())

	item, err := svc.CreateItem(context.Background(), &CreateItemInput{
		Name:  "Masala Dosa",
		Price: decimal.NewFromFloat(62.50),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6250), item.PricePaise)
}

func TestImportItemsInsertsAndUpdates(t *testing.T) {
	repo := newMemItemRepo(entity.Item{Name: "Chai", PricePaise: 3000})
	svc := NewItemService(repo)
	ctx := context.Background()

	buf := priceList(t, [][]interface{}{
		{"Chai", "35"},
		{"Samosa", "20"},
		{"Vada Pav", "25.50"},
	})

	count, err := svc.ImportItems(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	chai, err := repo.GetByName(ctx, "Chai")
	require.NoError(t, err)
	assert.Equal(t, int64(3500), chai.PricePaise)

	vadaPav, err := repo.GetByName(ctx, "Vada Pav")
	require.NoError(t, err)
	assert.Equal(t, int64(2550), vadaPav.PricePaise)
}

func TestImportItemsRejectsMalformedPrice(t *testing.T) {
	repo := newMemItemRepo(entity.Item{Name: "Chai", PricePaise: 3000})
	svc := NewItemService(repo)
	ctx := context.Background()

	buf := priceList(t, [][]interface{}{
		{"Chai", "35"},
		{"Samosa", "free"},
	})

	_, err := svc.ImportItems(ctx, buf)
	require.Error(t, err)

	// Failed imports change nothing.
	chai, err := repo.GetByName(ctx, "Chai")
	require.NoError(t, err)
	assert.Equal(t, int64(3000), chai.PricePaise)
}

func TestExportItemsRoundTrip(t *testing.T) {
	svc := NewItemService(newMemItemRepo(
		entity.Item{Name: "Chai", PricePaise: 3000},
		entity.Item{Name: "Samosa", PricePaise: 2000},
	))
	ctx := context.Background()

	f, err := svc.ExportItems(ctx)
	require.NoError(t, err)

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	count, err := svc.ImportItems(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
