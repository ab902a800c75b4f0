package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"cmspublish/internal/domain"
	"cmspublish/internal/publish"
)

// ResourceRenderer handles rendering of resource rows
type ResourceRenderer struct {
	styles    *Styles
	showDates bool
}

// NewResourceRenderer creates a new resource renderer
func NewResourceRenderer(styles *Styles, showDates bool) *ResourceRenderer {
	return &ResourceRenderer{
		styles:    styles,
		showDates: showDates,
	}
}

// ItemCheckBox renders the publish box and remove mark of one item status
func (r *ResourceRenderer) ItemCheckBox(state publish.ItemState, disabled bool) string {
	box := "[ ]"
	switch {
	case disabled:
		box = r.styles.Disabled.Render("[!]")
	case state == publish.StatePublish:
		box = r.styles.Publish.Render("[x]")
	}

	mark := " "
	if state == publish.StateRemove {
		mark = r.styles.Remove.Render("✗")
	}
	return box + " " + mark
}

// RenderResource renders a top-level resource. checkBox comes from
// ItemCheckBox, matched holds the byte offsets of filter matches in the path.
func (r *ResourceRenderer) RenderResource(res domain.PublishResource, checkBox string, isSelected bool,
	matched []int, now time.Time, width int) string {

	parts := []string{
		"  ",
		checkBox,
		" ",
		lipgloss.NewStyle().Foreground(lipgloss.Color(GetStateColor(res.State))).Render(res.State.Letter()),
		" ",
		r.highlightMatches(res.Path, matched),
	}

	if res.Title != "" {
		parts = append(parts, r.styles.Dim.Render(" "+res.Title))
	}
	if tag := r.problemTag(res.Info); tag != "" {
		parts = append(parts, " ", tag)
	}
	if r.showDates && !res.DateLastModified.IsZero() {
		modified := humanize.RelTime(res.DateLastModified, now, "ago", "from now")
		if res.UserLastModified != "" {
			modified = fmt.Sprintf("%s by %s", modified, res.UserLastModified)
		}
		parts = append(parts, r.styles.Dim.Render("  "+modified))
	}

	return r.selectLine(strings.Join(parts, ""), isSelected, width)
}

// RenderRelated renders a related resource beneath its parent. ridesAlong is
// true when submitting would publish it with the parent.
func (r *ResourceRenderer) RenderRelated(res domain.PublishResource, ridesAlong bool, isSelected bool, width int) string {
	marker := r.styles.Dim.Render("·")
	if ridesAlong {
		marker = r.styles.Publish.Render("+")
	}

	parts := []string{
		"        ↳ ",
		marker,
		" ",
		lipgloss.NewStyle().Foreground(lipgloss.Color(GetStateColor(res.State))).Render(res.State.Letter()),
		" ",
		r.styles.Dim.Render(res.Path),
	}
	if tag := r.problemTag(res.Info); tag != "" {
		parts = append(parts, " ", tag)
	}

	return r.selectLine(strings.Join(parts, ""), isSelected, width)
}

func (r *ResourceRenderer) problemTag(info *domain.ProblemInfo) string {
	if info == nil || info.Type == "" {
		return ""
	}
	text := string(info.Type)
	if info.Message != "" {
		text = fmt.Sprintf("%s: %s", info.Type, info.Message)
	}
	if info.HasProblemType() {
		return r.styles.Problem.Render("<" + text + ">")
	}
	return r.styles.Dim.Render("<" + text + ">")
}

// highlightMatches renders the bytes at the given offsets highlighted
func (r *ResourceRenderer) highlightMatches(text string, matched []int) string {
	if len(matched) == 0 {
		return text
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, ch := range text {
		if hit[i] {
			b.WriteString(r.styles.Highlight.Render(string(ch)))
		} else {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

func (r *ResourceRenderer) selectLine(line string, isSelected bool, width int) string {
	if !isSelected {
		return line
	}
	if width > 0 {
		if lineLen := lipgloss.Width(line); lineLen < width {
			line += strings.Repeat(" ", width-lineLen)
		}
	}
	return r.styles.SelectionBg.Render(line)
}
