// Package printer writes styled, human-oriented command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/chiclet/internal/core/styles"
)

type ctxKey struct{}

// Printer prefixes lines with a status glyph styled from the active theme.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.status(styles.SuccessStyle.Render("✓"), format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.status(styles.TextMutedStyle.Render("•"), format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.status(styles.WarningStyle.Render("!"), format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.status(styles.ErrorStyle.Render("✗"), format, args...)
}

func (p *Printer) status(glyph, format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", glyph, fmt.Sprintf(format, args...))
}
