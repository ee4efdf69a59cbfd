package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelsAreColoured(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, true)

	l.Info("found %d", 3)
	l.Warn("careful")
	l.Error("broken")
	l.Success("done")

	assert.Equal(t,
		"\x1b[36mfound 3\x1b[0m\n"+
			"\x1b[33mcareful\x1b[0m\n"+
			"\x1b[31mbroken\x1b[0m\n"+
			"\x1b[1m\x1b[32mdone\x1b[0m\x1b[0m\n",
		buf.String())
}

func TestPlainOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Warn("Item %s: No images found in field '%s'.", "42", "Content")

	assert.Equal(t, "Item 42: No images found in field 'Content'.\n", buf.String())
}
