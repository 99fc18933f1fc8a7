package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// MIMEType is the content type declared when the archive is uploaded.
const MIMEType = "application/gzip"

// Filename names one day's archive: <prefix>-<YYYY-MM-DD>.jsonl.gz.
func Filename(prefix, date string) string {
	return fmt.Sprintf("%s-%s.jsonl.gz", prefix, date)
}

// Write gzip-compresses payload at maximum compression into dir and returns
// the written file path. The payload is held fully in memory; there is no
// streaming path.
func Write(dir, prefix, date string, payload []byte) (string, error) {
	path := filepath.Join(dir, Filename(prefix, date))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create archive %s: %w", path, err)
	}

	zw, err := gzip.NewWriterLevel(f, gzip.BestCompression)
	if err != nil {
		f.Close()
		return "", fmt.Errorf("init gzip writer: %w", err)
	}

	if _, err := zw.Write(payload); err != nil {
		zw.Close()
		f.Close()
		return "", fmt.Errorf("compress archive %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("flush archive %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close archive %s: %w", path, err)
	}

	return path, nil
}

// Remove deletes the local archive after a successful upload.
func Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove archive %s: %w", path, err)
	}
	return nil
}
