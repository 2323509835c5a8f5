package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBillNoFormat(t *testing.T) {
	at := time.Date(2026, 8, 28, 14, 30, 55, 0, time.UTC)
	billNo := GenerateBillNo(at)

	assert.True(t, strings.HasPrefix(billNo, "BILL-20260828-143055-"), billNo)

	suffix := strings.TrimPrefix(billNo, "BILL-20260828-143055-")
	assert.Len(t, suffix, 8)
	assert.Equal(t, strings.ToUpper(suffix), suffix)
}

func TestGenerateBillNoUnique(t *testing.T) {
	at := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		billNo := GenerateBillNo(at)
		assert.False(t, seen[billNo], "duplicate bill number %s", billNo)
		seen[billNo] = true
	}
}
