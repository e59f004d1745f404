package terminal

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

// upperHalf paints the top pixel as foreground and the bottom pixel as background
const upperHalf = '▀'

// presenter keeps the scaled frame between calls
type presenter struct {
	buf *image.RGBA
}

// PixelSize returns the frame resolution one presentation can show: one column per
// cell and two rows per cell, leaving the bottom row for the status line
func (s *Screen) PixelSize() (w, h int) {
	cols, rows := s.screen.Size()
	return cols, imageRows(rows) * 2
}

func imageRows(rows int) int {
	if rows > 1 {
		return rows - 1
	}
	return rows
}

// Present scales frame onto the screen and writes status on the bottom row
func (s *Screen) Present(frame image.Image, status string) {
	cols, rows := s.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	imgRows := imageRows(rows)

	dst := image.Rect(0, 0, cols, imgRows*2)
	if s.buf == nil || s.buf.Bounds() != dst {
		s.buf = image.NewRGBA(dst)
	}
	draw.ApproxBiLinear.Scale(s.buf, dst, frame, frame.Bounds(), draw.Src, nil)

	for y := 0; y < imgRows; y++ {
		for x := 0; x < cols; x++ {
			top := s.buf.RGBAAt(x, 2*y)
			bottom := s.buf.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			s.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}

	if rows > 1 {
		s.statusLine(rows-1, cols, status)
	}
	s.screen.Show()
}

func (s *Screen) statusLine(row, cols int, text string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range text {
		if x >= cols {
			break
		}
		s.screen.SetContent(x, row, r, nil, style)
		x++
	}
	for ; x < cols; x++ {
		s.screen.SetContent(x, row, ' ', nil, style)
	}
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
