package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cmspublish/internal/publish"
)

// GroupRenderer handles rendering of group headers
type GroupRenderer struct {
	styles *Styles
}

// NewGroupRenderer creates a new group renderer
func NewGroupRenderer(styles *Styles) *GroupRenderer {
	return &GroupRenderer{
		styles: styles,
	}
}

// CheckBox renders a tri-state box
func CheckBox(state publish.CheckState) string {
	switch state {
	case publish.CheckOn:
		return "[x]"
	case publish.CheckPartial:
		return "[-]"
	default:
		return "[ ]"
	}
}

// RenderGroupHeader renders a group header with its publish and remove boxes
func (g *GroupRenderer) RenderGroupHeader(name string, summary *publish.ItemStateSummary, isSelected bool, width int) string {
	if summary == nil {
		summary = &publish.ItemStateSummary{}
	}

	publishBox := CheckBox(summary.PublishCheckState())
	removeBox := CheckBox(summary.RemoveCheckState())
	if summary.PublishCheckState() != publish.CheckOff {
		publishBox = g.styles.Publish.Render(publishBox)
	}
	if summary.RemoveCheckState() != publish.CheckOff {
		removeBox = g.styles.Remove.Render(removeBox)
	}

	line := fmt.Sprintf("%s %s %s %s", publishBox, removeBox, g.styles.GroupName.Render(name),
		g.styles.Dim.Render(fmt.Sprintf("(%d/%d)", summary.PublishCount(), summary.Total())))

	if isSelected {
		if width > 0 {
			if lineLen := lipgloss.Width(line); lineLen < width {
				line += strings.Repeat(" ", width-lineLen)
			}
		}
		return g.styles.SelectionBg.Render(line)
	}

	return line
}
