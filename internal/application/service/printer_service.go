package service

import (
	"context"
	"fmt"

	"github.com/kanhaiyya/billing-api/internal/config"
	"github.com/kanhaiyya/billing-api/internal/domain/entity"
	"github.com/kanhaiyya/billing-api/pkg/money"
	"github.com/kanhaiyya/billing-api/pkg/printer"
	"github.com/kanhaiyya/billing-api/pkg/receipt"
)

// PrinterService renders bills to ESC/POS and sends them to the configured
// thermal printer.
type PrinterService struct {
	printer printer.Printer
	billing *BillingService
	store   config.StoreConfig
	cfg     config.PrinterConfig
}

// NewPrinterService creates a new printer service
func NewPrinterService(p printer.Printer, billing *BillingService, store config.StoreConfig, cfg config.PrinterConfig) *PrinterService {
	return &PrinterService{printer: p, billing: billing, store: store, cfg: cfg}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.cfg.Type != "none" && s.cfg.Type != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.cfg.Type,
	}
}

// PrintBill fetches a bill by number and prints its receipt.
func (s *PrinterService) PrintBill(ctx context.Context, billNo string) error {
	bill, err := s.billing.GetBill(ctx, billNo)
	if err != nil {
		return err
	}
	if err := s.printer.Print(s.formatBill(bill)); err != nil {
		return fmt.Errorf("print bill %s: %w", billNo, err)
	}
	return nil
}

// TestPrint sends a short test page to verify the hardware path.
func (s *PrinterService) TestPrint() error {
	doc := printer.NewDocument(s.cfg.Width)
	doc.Align(printer.AlignCenter).Bold(true).Line("PRINTER TEST").Bold(false)
	doc.Line(s.store.Name)
	doc.Rule('-')
	doc.Align(printer.AlignLeft).Row("Status", "OK")
	doc.Feed(3).Cut()

	if err := s.printer.Print(doc.Bytes()); err != nil {
		return fmt.Errorf("test print failed: %w", err)
	}
	return nil
}

// formatBill lays a bill out for the thermal paper width. The archived
// flat-text receipt is the canonical record; this rendering only drives
// the printer.
func (s *PrinterService) formatBill(bill *entity.Bill) []byte {
	doc := printer.NewDocument(s.cfg.Width)

	doc.Align(printer.AlignCenter).Bold(true).Line(s.store.Name).Bold(false)
	doc.Rule('-')

	doc.Align(printer.AlignLeft)
	doc.Linef("Bill: %s", bill.BillNo)
	doc.Linef("Date: %s", bill.IssuedAt.Format(receipt.DateTimeLayout))
	doc.Linef("Table: %s", bill.TableID)
	if bill.Mobile != "" {
		doc.Linef("Mobile: %s", bill.Mobile)
	}
	doc.Rule('-')

	for _, line := range bill.Lines {
		doc.Line(line.ItemName)
		doc.Row(
			fmt.Sprintf("  %s x %d", money.Format(line.UnitPricePaise), line.Quantity),
			money.Format(line.LineTotalPaise),
		)
	}
	doc.Rule('-')

	doc.Row("Subtotal", money.Format(bill.SubtotalPaise))
	doc.Row("Discount", money.FormatPercent(bill.DiscountPercent)+"%")
	doc.Bold(true).Row("Net Total", money.Format(bill.NetTotalPaise)).Bold(false)

	doc.Feed(1)
	doc.Align(printer.AlignCenter).Line("Thank You! Visit Again")
	doc.Feed(3).Cut()

	return doc.Bytes()
}
