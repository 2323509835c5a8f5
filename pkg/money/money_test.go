package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		percent  string
		want     int64
	}{
		{"zero discount keeps subtotal", 13000, "0", 13000},
		{"ten percent", 13000, "10", 11700},
		{"full discount yields zero", 13000, "100", 0},
		{"fractional percent rounds half-up", 10001, "50", 5001}, // 50.005 -> 50.01
		{"empty subtotal", 0, "25", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			percent, err := decimal.NewFromString(tt.percent)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, ApplyDiscount(tt.subtotal, percent))
		})
	}
}

func TestApplyDiscountIsLinear(t *testing.T) {
	// net(subtotal, d) == subtotal * (100-d) / 100 for every d in [0,100]
	subtotal := int64(123400)
	for d := 0; d <= 100; d++ {
		percent := decimal.NewFromInt(int64(d))
		want := decimal.New(subtotal, 0).
			Mul(decimal.NewFromInt(int64(100 - d))).
			Div(decimal.NewFromInt(100)).
			Round(0).IntPart()
		assert.Equal(t, want, ApplyDiscount(subtotal, percent), "discount %d%%", d)
	}
}

func TestValidDiscount(t *testing.T) {
	assert.True(t, ValidDiscount(decimal.Zero))
	assert.True(t, ValidDiscount(decimal.NewFromInt(100)))
	assert.True(t, ValidDiscount(decimal.NewFromFloat(12.5)))
	assert.False(t, ValidDiscount(decimal.NewFromInt(-1)))
	assert.False(t, ValidDiscount(decimal.NewFromFloat(100.01)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "130", Format(13000))
	assert.Equal(t, "117.5", Format(11750))
	assert.Equal(t, "0.05", Format(5))
	assert.Equal(t, "0", Format(0))
}

func TestPaiseRoundTrip(t *testing.T) {
	for _, paise := range []int64{0, 1, 99, 100, 13000, 999999999} {
		assert.Equal(t, paise, ToPaise(FromPaise(paise)))
	}
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, int64(10000), LineTotal(5000, 2))
	assert.Equal(t, int64(0), LineTotal(5000, 0))
}
