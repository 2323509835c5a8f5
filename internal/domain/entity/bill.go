package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is a finalized, immutable transaction record. The ledger is
// append-only: bills are never updated or deleted, and line amounts are
// snapshots of the catalog at billing time, so later price changes do not
// alter saved bills.
type Bill struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillNo          string          `gorm:"size:100;uniqueIndex;not null" json:"bill_no"`
	TableID         string          `gorm:"size:50;not null;index" json:"table"`
	Mobile          string          `gorm:"size:50;index" json:"mobile"`
	IssuedAt        time.Time       `gorm:"not null" json:"issued_at"`
	SubtotalPaise   int64           `gorm:"not null" json:"-"` // Stored in paise, excluded from JSON
	DiscountPercent decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"discount_percent"`
	NetTotalPaise   int64           `gorm:"not null" json:"-"` // Stored in paise, excluded from JSON
	ReceiptPath     string          `gorm:"size:512" json:"receipt_path,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`

	// Relationships
	Lines []BillLine `gorm:"foreignKey:BillID" json:"lines,omitempty"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (b Bill) MarshalJSON() ([]byte, error) {
	type Alias Bill
	return json.Marshal(&struct {
		Alias
		Subtotal float64 `json:"subtotal"`
		NetTotal float64 `json:"net_total"`
	}{
		Alias:    Alias(b),
		Subtotal: float64(b.SubtotalPaise) / 100,
		NetTotal: float64(b.NetTotalPaise) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillLine is one billed item on a bill, in cart order. Position preserves
// that order across reloads so receipts re-render deterministically.
type BillLine struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BillID         uuid.UUID `gorm:"type:uuid;not null;index" json:"bill_id"`
	Position       int       `gorm:"not null" json:"position"`
	ItemName       string    `gorm:"size:255;not null" json:"item_name"`
	UnitPricePaise int64     `gorm:"not null" json:"-"` // Stored in paise, excluded from JSON
	Quantity       int       `gorm:"not null" json:"quantity"`
	LineTotalPaise int64     `gorm:"not null" json:"-"` // Stored in paise, excluded from JSON
	CreatedAt      time.Time `json:"created_at"`
}

// MarshalJSON custom marshaler to convert paise to decimal for API responses
func (l BillLine) MarshalJSON() ([]byte, error) {
	type Alias BillLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		LineTotal float64 `json:"line_total"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPricePaise) / 100,
		LineTotal: float64(l.LineTotalPaise) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new bill line
func (l *BillLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillLine model
func (BillLine) TableName() string {
	return "bill_lines"
}
