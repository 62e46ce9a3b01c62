package pdfdoc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const bytesPerMB = 1024 * 1024

// Validate checks that path exists and carries a .pdf extension (any case).
func Validate(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return newError(KindNotFound, "File does not exist", err)
		}
		return newError(KindIO, fmt.Sprintf("IO error: %v", err), err)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return newError(KindNotAPdf, "File is not a PDF", nil)
	}
	return nil
}

// ValidateSize rejects files whose size in whole megabytes exceeds maxMB.
// Callers run it before extraction; the extractor itself does not.
func ValidateSize(path string, maxMB int64) error {
	st, err := os.Stat(path)
	if err != nil {
		return newError(KindIO, fmt.Sprintf("IO error: %v", err), err)
	}
	sizeMB := st.Size() / bytesPerMB
	if sizeMB > maxMB {
		return newError(KindFileTooLarge, fmt.Sprintf("File size %dMB exceeds limit of %dMB", sizeMB, maxMB), nil)
	}
	return nil
}

// FormatSize renders a byte count for display: bytes, KB or MB.
func FormatSize(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d bytes", n)
	case n < bytesPerMB:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/bytesPerMB)
	}
}
