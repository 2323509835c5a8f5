package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/pkg/money"
)

// BillsWorkbook builds a bill-register workbook, one row per bill line so
// the register can be filtered and summed in any spreadsheet program.
func BillsWorkbook(bills []entity.Bill) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	header := []interface{}{
		"Bill No", "Date", "Table", "Mobile",
		"Item", "Price", "Qty", "Line Total",
		"Subtotal", "Discount %", "Net Total",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("spreadsheet: write header: %w", err)
	}

	rowIdx := 2
	for _, bill := range bills {
		for _, line := range bill.Lines {
			cell, _ := excelize.CoordinatesToCellName(1, rowIdx)
			row := []interface{}{
				bill.BillNo,
				bill.IssuedAt.Format("02-01-2006 15:04:05"),
				bill.TableID,
				bill.Mobile,
				line.ItemName,
				money.Format(line.UnitPricePaise),
				line.Quantity,
				money.Format(line.LineTotalPaise),
				money.Format(bill.SubtotalPaise),
				bill.DiscountPercent.String(),
				money.Format(bill.NetTotalPaise),
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("spreadsheet: write row %d: %w", rowIdx, err)
			}
			rowIdx++
		}
	}

	return f, nil
}
