package iif

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRow(t *testing.T) {
	t.Run("pads rows to the block width", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)

		require.NoError(t, w.WriteRow([]string{"ENDTRNS"}, 4))
		require.NoError(t, w.Flush())

		assert.Equal(t, "ENDTRNS\t\t\t\n", buf.String())
	})

	t.Run("rows at or beyond width are untouched", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)

		require.NoError(t, w.WriteRow([]string{"a", "b", "c"}, 2))
		require.NoError(t, w.Flush())

		assert.Equal(t, "a\tb\tc\n", buf.String())
	})

	t.Run("leading-space fields are written bare", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)

		require.NoError(t, w.WriteRow([]string{"TRNS", " ", "DEPOSIT"}, 3))
		require.NoError(t, w.Flush())

		assert.Equal(t, "TRNS\t \tDEPOSIT\n", buf.String(),
			"placeholder fields must not be quoted")
	})

	t.Run("fields containing the delimiter are rejected", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)

		err := w.WriteRow([]string{"a\tb"}, 1)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "delimiter")
	})

	t.Run("rows end with a bare LF", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewWriter(&buf)

		require.NoError(t, w.WriteRow([]string{"!CUST", "NAME"}, 2))
		require.NoError(t, w.Flush())

		assert.False(t, strings.Contains(buf.String(), "\r"))
		assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	})
}
