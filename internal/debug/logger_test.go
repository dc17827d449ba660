package debug

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitWriter(t *testing.T) {
	defer InitWriter(&bytes.Buffer{}, false)

	var buf bytes.Buffer
	InitWriter(&buf, false)
	assert.False(t, Enabled())

	Debug("hidden", "k", 1)
	Info("hidden")
	assert.Empty(t, buf.String())

	Error("shown", "dialect", "postgres")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "dialect=postgres")

	buf.Reset()
	InitWriter(&buf, true)
	assert.True(t, Enabled())

	Debug("executing statement", "op", "find")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "op=find")

	buf.Reset()
	With("component", "pool").Warn("slow")
	assert.Contains(t, buf.String(), "component=pool")
}
