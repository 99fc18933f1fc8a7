package archive

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func TestWriteRoundTrip(t *testing.T) {
	payload := []byte(`{"timestamp":"2024-03-09T00:00:01Z","raw":"{\"app\":\"web\"}"}` + "\n" +
		`{"timestamp":"2024-03-09T23:59:59Z","raw":"{\"app\":\"api\"}"}` + "\n")

	dir := t.TempDir()
	path, err := Write(dir, "logs", "2024-03-09", payload)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "logs-2024-03-09.jsonl.gz"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer zr.Close()

	got, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.Equal(t, payload, got, "decompressed output must be byte identical to the input")
}

func TestWriteBadDir(t *testing.T) {
	_, err := Write(filepath.Join(t.TempDir(), "missing"), "logs", "2024-03-09", []byte("x"))
	require.Error(t, err)
}

func TestRemove(t *testing.T) {
	dir := t.TempDir()
	path, err := Write(dir, "logs", "2024-03-09", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, Remove(path))
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	require.Error(t, Remove(path), "second delete must surface the fs error")
}

func TestFilename(t *testing.T) {
	require.Equal(t, "prod-logs-2024-03-09.jsonl.gz", Filename("prod-logs", "2024-03-09"))
}
