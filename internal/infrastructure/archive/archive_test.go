package archive

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCreatesDatedDirectories(t *testing.T) {
	root := t.TempDir()
	a := NewReceiptArchive(root)

	issuedAt := time.Date(2026, 8, 28, 14, 30, 55, 0, time.UTC)
	path, err := a.Write("BILL-20260828-143055-3F9A2C1B", "5", "9876543210", issuedAt, "receipt text\n")
	require.NoError(t, err)

	want := filepath.Join(root, "bills", "2026", "28-08-2026", "BILL-20260828-143055-3F9A2C1B_T-5_9876543210.txt")
	assert.Equal(t, want, path)
	assert.Equal(t, want, a.Path("BILL-20260828-143055-3F9A2C1B", "5", "9876543210", issuedAt))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "receipt text\n", string(data))
}

func TestWriteSanitizesFileName(t *testing.T) {
	a := NewReceiptArchive(t.TempDir())

	issuedAt := time.Date(2026, 8, 28, 14, 30, 55, 0, time.UTC)
	path, err := a.Write("BILL-20260828-143055-AB12CD34", "5/6", "98 76", issuedAt, "x")
	require.NoError(t, err)

	assert.Equal(t, "BILL-20260828-143055-AB12CD34_T-5_6_98_76.txt", filepath.Base(path))
}

func TestWriteEmptyMobile(t *testing.T) {
	a := NewReceiptArchive(t.TempDir())

	issuedAt := time.Date(2026, 8, 28, 14, 30, 55, 0, time.UTC)
	path, err := a.Write("BILL-20260828-143055-AB12CD34", "5", "", issuedAt, "x")
	require.NoError(t, err)

	assert.Equal(t, "BILL-20260828-143055-AB12CD34_T-5_.txt", filepath.Base(path))
}
