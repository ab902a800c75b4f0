package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay centers the popup over a greyed-out copy of mainContent
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	popupLines := strings.Split(styledPopup, "\n")

	lines := strings.Split(desaturateANSI(mainContent), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}

	modalW := lipgloss.Width(styledPopup)
	x := (width - modalW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - len(popupLines)) / 2
	if y < 0 {
		y = 0
	}

	for i, popupLine := range popupLines {
		row := y + i
		if row >= len(lines) {
			break
		}
		lines[row] = strings.Repeat(" ", x) + popupLine
	}

	return strings.Join(lines, "\n")
}

// desaturateANSI strips color/style codes and recolors text dim gray line by line
func desaturateANSI(s string) string {
	gray := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if plain := ansi.Strip(line); plain != "" {
			lines[i] = gray.Render(plain)
		} else {
			lines[i] = plain
		}
	}
	return strings.Join(lines, "\n")
}
