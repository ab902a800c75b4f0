package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"cmspublish/internal/domain"
	"cmspublish/internal/publish"
)

// RowKind distinguishes the lines of the publish list
type RowKind int

const (
	RowGroup RowKind = iota
	RowResource
	RowRelated
)

// Row is one visible line of the publish list
type Row struct {
	Kind       RowKind
	GroupIndex int
	GroupName  string                    // RowGroup
	Summary    *publish.ItemStateSummary // RowGroup
	Resource   domain.PublishResource    // RowResource, RowRelated
	ParentID   string                    // RowRelated
	CheckBox   string                    // RowResource
	RidesAlong bool                      // RowRelated
	Matched    []int                     // RowResource
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Rows           []Row
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	Loading        bool
	Options        domain.PublishOptions
	FilterQuery    string
	InputMode      string // "", "search" or "confirm"
	TextInput      string
	StatusMessage  string
	StatusIsError  bool
	PublishCount   int
	RemoveCount    int
	ProblemCount   int
	HiddenCount    int
	CanSubmit      bool
	HelpView       string
	Now            time.Time
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	resRender   *ResourceRenderer
	groupRender *GroupRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showDates bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		resRender:   NewResourceRenderer(styles, showDates),
		groupRender: NewGroupRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// ItemCheckBox renders the checkbox cached per item by the model
func (r *Renderer) ItemCheckBox(state publish.ItemState, disabled bool) string {
	return r.resRender.ItemCheckBox(state, disabled)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	innerWidth := termWidth - 4 // main container padding

	content.WriteString(r.renderTitle(state, innerWidth))
	content.WriteString("\n\n")

	if state.InputMode == "search" {
		content.WriteString(state.TextInput)
		content.WriteString("\n\n")
	}

	switch {
	case state.Loading && len(state.Rows) == 0:
		content.WriteString(r.styles.StatusLoading.Render("Loading publish list..."))
	case len(state.Rows) == 0 && state.FilterQuery != "":
		content.WriteString(r.styles.Dim.Render("No resource matches the filter. Press esc to clear it."))
	case len(state.Rows) == 0:
		content.WriteString(r.styles.Dim.Render("Nothing to publish."))
	default:
		content.WriteString(r.renderList(state, innerWidth))
	}

	// Push status and help to the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	if padding := availableLines - currentLines - 3; padding > 0 {
		content.WriteString(strings.Repeat("\n", padding))
	}

	content.WriteString("\n\n")
	content.WriteString(ansi.Truncate(r.renderStatus(state), innerWidth, "…"))
	content.WriteString("\n")
	content.WriteString(ansi.Truncate(r.styles.Help.Render(state.HelpView), innerWidth, "…"))

	finalContent := r.styles.Main.MaxHeight(state.Height).Render(content.String())

	if state.InputMode == "confirm" {
		prompt := r.styles.Confirm.Render(fmt.Sprintf("Publish %d and remove %d resources?", state.PublishCount, state.RemoveCount)) +
			"\n\n" + r.styles.Dim.Render("y / enter: submit   n / esc: cancel")
		return r.popupRender.RenderPopupOverlay(finalContent, prompt, state.Height, termWidth, r.styles.ConfirmBox)
	}

	return finalContent
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("cmspublish")

	var right []string
	if state.FilterQuery != "" {
		right = append(right, r.styles.Filter.Render(fmt.Sprintf("[Filter: %s]", state.FilterQuery)))
	}
	right = append(right,
		r.renderOption("related", state.Options.IncludeRelated),
		r.renderOption("siblings", state.Options.IncludeSiblings))
	rightContent := strings.Join(right, " ")

	paddingWidth := width - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + rightContent
}

func (r *Renderer) renderOption(name string, on bool) string {
	if on {
		return r.styles.Option.Render("[" + name + " ✓]")
	}
	return r.styles.Dim.Render("[" + name + " ✗]")
}

// renderList renders the rows inside the viewport
func (r *Renderer) renderList(state ViewState, width int) string {
	start := state.ViewportOffset
	if start < 0 || start >= len(state.Rows) {
		start = 0
	}
	end := len(state.Rows)
	if state.ViewportHeight > 0 && start+state.ViewportHeight < end {
		end = start + state.ViewportHeight
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row := state.Rows[i]
		isSelected := i == state.SelectedIndex

		var line string
		switch row.Kind {
		case RowGroup:
			line = r.groupRender.RenderGroupHeader(row.GroupName, row.Summary, isSelected, width)
		case RowResource:
			line = r.resRender.RenderResource(row.Resource, row.CheckBox, isSelected, row.Matched, state.Now, width)
		case RowRelated:
			line = r.resRender.RenderRelated(row.Resource, row.RidesAlong, isSelected, width)
		}
		lines = append(lines, ansi.Truncate(line, width, "…"))
	}

	return strings.Join(lines, "\n")
}

func (r *Renderer) renderStatus(state ViewState) string {
	if state.StatusMessage != "" {
		if state.StatusIsError {
			return r.styles.StatusError.Render(state.StatusMessage)
		}
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	}

	parts := []string{
		r.styles.Publish.Render(fmt.Sprintf("publish %d", state.PublishCount)),
		r.styles.Remove.Render(fmt.Sprintf("remove %d", state.RemoveCount)),
	}
	if state.ProblemCount > 0 {
		parts = append(parts, r.styles.Problem.Render(fmt.Sprintf("%d with problems", state.ProblemCount)))
	}
	if state.HiddenCount > 0 {
		parts = append(parts, r.styles.Dim.Render(fmt.Sprintf("%d already published hidden", state.HiddenCount)))
	}
	if state.CanSubmit {
		parts = append(parts, r.styles.Dim.Render("enter to publish"))
	}
	return r.styles.Status.Render(strings.Join(parts, " · "))
}
