package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter("release", &buf)
	l.Debug("hidden")
	l.Info("borrowed", "book_id", 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec), buf.String())
	assert.Equal(t, "borrowed", rec["msg"])
	assert.Equal(t, "library-backend", rec["app"])
	assert.EqualValues(t, 2, rec["book_id"])
}

func TestDevLogsText(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter("dev", &buf)
	l.Debug("seeded", "books", 10)

	assert.Contains(t, buf.String(), "msg=seeded")
	assert.Contains(t, buf.String(), "books=10")
	assert.Contains(t, buf.String(), "app=library-backend")
}
