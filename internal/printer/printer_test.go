package printer

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Successf("ok %d", 1)
	p.Warnf("careful")
	p.Errorf("bad %s", "thing")
	p.Infof("note")
	p.Printf("  plain")

	assert.Equal(t, "✓ ok 1\n! careful\n✗ bad thing\n• note\n  plain\n", ansi.Strip(buf.String()))
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	ctx := NewContext(context.Background(), p)
	assert.Same(t, p, Ctx(ctx))
	assert.NotNil(t, Ctx(context.Background()), "falls back to stderr")
}
