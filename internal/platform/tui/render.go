package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/vovakirdan/wingchase/internal/core"
	"github.com/vovakirdan/wingchase/internal/game"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorBrightRed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorBrightGreen:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Glyphs for the top-down map. Lowercase means below the camera.
const (
	hazardAbove = 'O'
	hazardBelow = 'o'
	goalAbove   = 'W'
	goalBelow   = 'w'
	cameraFlat  = '•'
)

// headingArrows are indexed by octant, counter-clockwise from +X.
var headingArrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// Minimum screen size for the map.
const (
	minMapW = 20
	minMapH = 8
)

// drawSession draws a top-down view of the level box: status line on top,
// map in the middle, readouts on the bottom row. +Y is up the screen.
func drawSession(scr *core.Screen, mode *game.Mode) {
	scr.Clear()
	w, h := scr.Width(), scr.Height()
	if w < minMapW || h < minMapH {
		scr.DrawTextCentered(h/2, "Too small", core.ColorYellow)
		return
	}

	scr.DrawTextCentered(0, mode.Status(), statusColor(mode.State()))

	frame := core.NewRect(0, 1, w, h-2)
	scr.DrawBox(frame, core.ColorGray)
	inner := core.NewRect(frame.X+1, frame.Y+1, frame.W-2, frame.H-2)

	cfg := mode.Config()
	box := cfg.Bounds.Box()
	eye := mode.Camera().Position()

	project := func(p mgl32.Vec3) (int, int) {
		size := box.Size()
		fx := (p.X() - box.Min.X()) / size.X()
		fy := (box.Max.Y() - p.Y()) / size.Y()
		x := inner.X + int(fx*float32(inner.W-1)+0.5)
		y := inner.Y + int(fy*float32(inner.H-1)+0.5)
		return core.Clamp(x, inner.X, inner.Right()-1), core.Clamp(y, inner.Y, inner.Bottom()-1)
	}

	goal := mode.Goal().Position()
	gx, gy := project(goal)
	scr.SetColored(gx, gy, pick(goal.Z() >= eye.Z(), goalAbove, goalBelow), core.ColorBrightGreen)

	nearest := float32(math.MaxFloat32)
	for _, hz := range mode.Hazards() {
		p := hz.Position()
		d := p.Sub(eye).Len()
		nearest = min(nearest, d)
		c := core.ColorRed
		if d < 2*cfg.Rules.LoseRadius {
			c = core.ColorBrightRed
		}
		x, y := project(p)
		scr.SetColored(x, y, pick(p.Z() >= eye.Z(), hazardAbove, hazardBelow), c)
	}

	cx, cy := project(eye)
	scr.SetColored(cx, cy, heading(mode.Camera().Camera.Transform.Forward()), core.ColorBrightYellow)

	info := fmt.Sprintf(" alt %4.1f  goal %5.1f  ball %5.1f  %6.1fs",
		eye.Z(), goal.Sub(eye).Len(), nearest, mode.Elapsed())
	scr.DrawTextColored(0, h-1, info, core.ColorCyan)
	if mode.Input().Looking() {
		scr.DrawTextColored(w-6, h-1, "LOOK", core.ColorBrightYellow)
	}
}

func statusColor(s game.State) core.Color {
	switch s {
	case game.StateWon:
		return core.ColorBrightGreen
	case game.StateLost:
		return core.ColorBrightRed
	default:
		return core.ColorBrightWhite
	}
}

// heading returns the arrow closest to the horizontal part of forward.
func heading(forward mgl32.Vec3) rune {
	fx, fy := float64(forward.X()), float64(forward.Y())
	if math.Hypot(fx, fy) < 0.2 {
		return cameraFlat
	}
	octant := int(math.Round(math.Atan2(fy, fx)/(math.Pi/4))) & 7
	return headingArrows[octant]
}

func pick(cond bool, a, b rune) rune {
	if cond {
		return a
	}
	return b
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
