package receipt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	issued := time.Date(2026, 8, 28, 14, 30, 55, 0, time.Local)

	r := &Receipt{
		StoreName: "Kanhaiyya Snack Center",
		Currency:  "₹",
		IssuedAt:  issued,
		Table:     "5",
		Mobile:    "9876543210",
		Lines: []Line{
			{Name: "Tea", UnitPricePaise: 5000, Quantity: 2, LineTotalPaise: 10000},
			{Name: "Samosa", UnitPricePaise: 3000, Quantity: 1, LineTotalPaise: 3000},
		},
		SubtotalPaise:   13000,
		DiscountPercent: decimal.NewFromInt(10),
		NetTotalPaise:   11700,
	}

	want := "Kanhaiyya Snack Center\n" +
		"-----------------------\n" +
		"Date: 28-08-2026 14:30:55\n" +
		"Table: 5\n" +
		"Mobile: 9876543210\n" +
		"-----------------------\n" +
		"Tea  ₹50 x 2  =  ₹100\n" +
		"Samosa  ₹30 x 1  =  ₹30\n" +
		"-----------------------\n" +
		"Subtotal: ₹130\n" +
		"Discount: 10%\n" +
		"Net Total: ₹117\n" +
		"\nThank You! Visit Again\n"

	assert.Equal(t, want, r.Render())
}

func TestRenderEmptyMobile(t *testing.T) {
	r := &Receipt{
		StoreName:       "Kanhaiyya Snack Center",
		Currency:        "₹",
		IssuedAt:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local),
		Table:           "2",
		DiscountPercent: decimal.Zero,
	}

	out := r.Render()
	assert.Contains(t, out, "Mobile: \n")
	assert.Contains(t, out, "Discount: 0%\n")
}
