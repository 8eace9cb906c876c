package normalize

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"github.com/gyeh/hkpcalc/internal/model"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// ChartHash computes a stable SHA-256 over a finding chart. Teeth are
// visited in ascending order with null separators, so equal charts hash
// equally regardless of how they were built.
func ChartHash(chart model.FindingChart) []byte {
	h := sha256.New()
	for _, t := range chart.Teeth() {
		code, _ := chart.Get(t)
		h.Write([]byte(t.String()))
		h.Write([]byte{0})
		h.Write([]byte(code))
		h.Write([]byte{0})
	}
	return h.Sum(nil)
}
