package pdfextract

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractFile returns up to maxRunes of the trimmed plain text in the PDF at
// path. A maxRunes of zero or less returns the whole text.
func ExtractFile(path string, maxRunes int) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf failed: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text failed: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text failed: %w", err)
	}
	return Excerpt(strings.TrimSpace(string(out)), maxRunes), nil
}

// Excerpt cuts s to at most n runes.
func Excerpt(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
