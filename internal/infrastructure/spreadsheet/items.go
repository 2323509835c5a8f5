// Package spreadsheet reads and writes the xlsx workbooks the shop keeps its
// records in: a price list with Item/Price columns and a bill register.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/pkg/money"
)

// ReadItems parses a price-list workbook. The first sheet must carry an
// "Item" and a "Price" column; the header row is matched case-insensitively
// so hand-edited workbooks keep working. Rows with an empty name are skipped,
// malformed prices fail the whole import.
func ReadItems(r io.Reader) ([]entity.Item, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("spreadsheet: workbook has no rows")
	}

	nameCol, priceCol := -1, -1
	for i, cell := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "item", "name":
			nameCol = i
		case "price":
			priceCol = i
		}
	}
	if nameCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("spreadsheet: missing Item or Price column in header row")
	}

	var items []entity.Item
	for rowIdx, row := range rows[1:] {
		name := ""
		if nameCol < len(row) {
			name = strings.TrimSpace(row[nameCol])
		}
		if name == "" {
			continue
		}

		raw := ""
		if priceCol < len(row) {
			raw = strings.TrimSpace(row[priceCol])
		}
		price, err := decimal.NewFromString(raw)
		if err != nil || price.IsNegative() {
			return nil, fmt.Errorf("spreadsheet: invalid price %q for item %q (row %d)", raw, name, rowIdx+2)
		}

		items = append(items, entity.Item{
			Name:       name,
			PricePaise: money.ToPaise(price),
		})
	}

	return items, nil
}

// ItemsWorkbook builds a price-list workbook from catalog items.
func ItemsWorkbook(items []entity.Item) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := f.SetSheetRow(sheet, "A1", &[]interface{}{"Item", "Price"}); err != nil {
		return nil, fmt.Errorf("spreadsheet: write header: %w", err)
	}

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{item.Name, money.Format(item.PricePaise)}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("spreadsheet: write row %d: %w", i+2, err)
		}
	}

	return f, nil
}
