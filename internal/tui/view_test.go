package tui

import (
	"testing"

	lipgloss "charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/chiclet/internal/core/slicer"
	"github.com/colonyops/chiclet/internal/core/styles"
)

func TestOutlineOf(t *testing.T) {
	tests := []struct {
		outline string
		weight  int
		want    sides
	}{
		{outline: "Frame", weight: 1, want: sides{top: true, bottom: true, left: true, right: true}},
		{outline: "BottomOnly", weight: 1, want: sides{bottom: true}},
		{outline: "LeftRight", weight: 2, want: sides{left: true, right: true}},
		{outline: "None", weight: 1, want: sides{}},
		{outline: "Frame", weight: 0, want: sides{}},
	}

	for _, tt := range tests {
		t.Run(tt.outline, func(t *testing.T) {
			assert.Equal(t, tt.want, outlineOf(tt.outline, tt.weight))
		})
	}
}

func TestChicletBorder(t *testing.T) {
	ch := slicer.DefaultSettings().Chiclet

	b := chicletBorder(ch)
	assert.Equal(t, cutBorder, b, "frame keeps every edge")

	ch.BorderStyle = slicer.BorderRounded
	assert.Equal(t, lipgloss.RoundedBorder().TopLeft, chicletBorder(ch).TopLeft)

	ch.BorderStyle = slicer.BorderSquare
	ch.OutlineWeight = 3
	assert.Equal(t, lipgloss.ThickBorder().Top, chicletBorder(ch).Top)
}

func TestMaskBorder(t *testing.T) {
	b := maskBorder(lipgloss.NormalBorder(), sides{bottom: true})

	assert.Equal(t, " ", b.Top)
	assert.Equal(t, " ", b.Left)
	assert.Equal(t, " ", b.TopLeft)
	assert.Equal(t, "─", b.Bottom)
	assert.Equal(t, "─", b.BottomLeft, "corners of a lone edge extend it")
	assert.Equal(t, "─", b.BottomRight)
}

func TestImageLabel(t *testing.T) {
	assert.Equal(t, styles.IconImage+" example.com", imageLabel("https://example.com/a.png"))
	assert.Equal(t, styles.IconImage, imageLabel("::"))
}

func TestPadLines(t *testing.T) {
	assert.Equal(t, "a\n\n", padLines("a", 3))
	assert.Equal(t, "a\nb\nc", padLines("a\nb\nc", 2))
}
