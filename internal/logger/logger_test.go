package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, out []byte)
	}{
		{
			name:   "text",
			format: "text",
			check: func(t *testing.T, out []byte) {
				assert.Contains(t, string(out), "msg=hello")
				assert.Contains(t, string(out), "component=cart")
			},
		},
		{
			name:   "json",
			format: "JSON",
			check: func(t *testing.T, out []byte) {
				var rec map[string]any
				require.NoError(t, json.Unmarshal(out, &rec))
				assert.Equal(t, "hello", rec["msg"])
				assert.Equal(t, "cart", rec["component"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l := NewWithWriter(&buf, 0, tt.format).With("component", "cart")
			l.Info("hello")
			tt.check(t, buf.Bytes())
		})
	}
}

func TestNewWithWriter_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewWithWriter(&buf, 4, "text")
	l.Info("dropped")
	assert.Empty(t, buf.String())

	l.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}
