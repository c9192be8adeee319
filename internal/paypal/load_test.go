package paypal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoadExport(t *testing.T) {
	t.Run("reads a plain CSV export", func(t *testing.T) {
		path := writeTemp(t, "paypal.csv", []byte(
			"Date, Type ,Status\n"+
				"03/31/2015,Payment Sent,Completed\n"))

		raw, err := LoadExport(path, "windows-1252")

		require.NoError(t, err)
		assert.Equal(t, []string{"Date", "Type", "Status"}, raw.Headers, "headers are trimmed")
		require.Len(t, raw.Rows, 1)
		assert.Equal(t, "Payment Sent", raw.Rows[0]["Type"])
		assert.False(t, raw.Transcoded)
	})

	t.Run("pads ragged rows with empty values", func(t *testing.T) {
		path := writeTemp(t, "paypal.csv", []byte(
			"Date,Type,Status\n"+
				"03/31/2015,Payment Sent\n"))

		raw, err := LoadExport(path, "windows-1252")

		require.NoError(t, err)
		assert.Equal(t, "", raw.Rows[0]["Status"])
	})

	t.Run("strips a UTF-8 BOM", func(t *testing.T) {
		path := writeTemp(t, "paypal.csv", append(
			[]byte{0xEF, 0xBB, 0xBF},
			[]byte("Date,Type\n03/31/2015,Refund\n")...))

		raw, err := LoadExport(path, "windows-1252")

		require.NoError(t, err)
		assert.Equal(t, []string{"Date", "Type"}, raw.Headers)
	})

	t.Run("transcodes non-UTF-8 input from the fallback encoding", func(t *testing.T) {
		// "Café" with an é encoded as Windows-1252 0xE9, invalid as UTF-8.
		path := writeTemp(t, "paypal.csv", []byte{
			'N', 'a', 'm', 'e', '\n',
			'C', 'a', 'f', 0xE9, '\n',
		})

		raw, err := LoadExport(path, "windows-1252")

		require.NoError(t, err)
		assert.True(t, raw.Transcoded)
		require.Len(t, raw.Rows, 1)
		assert.Equal(t, "Café", raw.Rows[0]["Name"])
	})

	t.Run("rejects an unsupported fallback encoding", func(t *testing.T) {
		path := writeTemp(t, "paypal.csv", []byte{0xFF, 0xFE, 0x00})

		_, err := LoadExport(path, "utf-16")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported fallback encoding")
	})

	t.Run("empty file is an error", func(t *testing.T) {
		path := writeTemp(t, "paypal.csv", nil)

		_, err := LoadExport(path, "windows-1252")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := LoadExport(filepath.Join(t.TempDir(), "nope.csv"), "windows-1252")

		require.Error(t, err)
	})
}
