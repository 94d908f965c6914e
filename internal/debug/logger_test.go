package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitWriter(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(true, &buf)
	t.Cleanup(func() { Init(false) })

	assert.True(t, Enabled())
	Debug("compiled", "sql", "SELECT 1")
	assert.Contains(t, buf.String(), "msg=compiled")
	assert.Contains(t, buf.String(), `sql="SELECT 1"`)

	buf.Reset()
	InitWriter(false, &buf)
	assert.False(t, Enabled())
	Error("dropped")
	assert.Empty(t, buf.String())
}
