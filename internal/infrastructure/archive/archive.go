// Package archive stores the flat-text receipt of every finalized bill on
// disk, grouped by year and date the way the shop has always filed them:
//
//	<root>/bills/2026/28-08-2026/BILL-20260828-143055-3F9A2C1B_T-5_9876543210.txt
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReceiptArchive writes receipt files under a root storage directory.
type ReceiptArchive struct {
	root string
}

// NewReceiptArchive creates a receipt archive rooted at the given directory.
func NewReceiptArchive(root string) *ReceiptArchive {
	return &ReceiptArchive{root: root}
}

// Path returns where the receipt for a bill will be stored. It is
// deterministic so the path can be recorded on the bill row before the
// file itself is written.
func (a *ReceiptArchive) Path(billNo, table, mobile string, issuedAt time.Time) string {
	dir := filepath.Join(a.root, "bills", issuedAt.Format("2006"), issuedAt.Format("02-01-2006"))
	name := fmt.Sprintf("%s_T-%s_%s.txt", billNo, sanitize(table), sanitize(mobile))
	return filepath.Join(dir, name)
}

// Write stores the receipt text and returns the path of the written file.
// The bill number keeps the name unique; table and mobile keep it greppable.
func (a *ReceiptArchive) Write(billNo, table, mobile string, issuedAt time.Time, text string) (string, error) {
	path := a.Path(billNo, table, mobile, issuedAt)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("archive: create directory %s: %w", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("archive: write receipt %s: %w", path, err)
	}
	return path, nil
}

// sanitize strips characters that are unsafe in file names.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '+':
			return r
		default:
			return '_'
		}
	}, s)
}
