package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"cmspublish/internal/publish"
	"cmspublish/internal/ui/input/modes"
)

var helpSections = []string{"Navigation", "Selection", "Publish options", "Other"}

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent renders the key bindings of keys for the pager
func (r *HelpRenderer) RenderHelpContent(keys modes.KeyMap) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("cmspublish Help"))
	help.WriteString("\n")

	for i, column := range keys.FullHelp() {
		if i < len(helpSections) {
			help.WriteString(sectionStyle.Render(helpSections[i]))
			help.WriteString("\n")
		}
		for _, binding := range column {
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(binding.Help().Key), descStyle.Render(binding.Help().Desc)))
		}
		help.WriteString("\n")
	}

	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render(
		"  [x] publish  [-] partly selected  [!] cannot be published  ✗ remove from list"))
	help.WriteString("\n")

	return help.String()
}

// RenderPublishList renders what submitting would do, group by group
func (r *HelpRenderer) RenderPublishList(dm *publish.DataModel) string {
	var b strings.Builder
	if dm == nil || dm.IsEmpty() {
		return "Nothing to publish.\n"
	}

	publishIDs := dm.PublishIDs()
	removeIDs := dm.RemoveIDs()
	fmt.Fprintf(&b, "Publish list: %d to publish, %d to remove, %d with problems\n\n",
		len(publishIDs), len(removeIDs), dm.CountProblems())

	summaries := dm.ComputeGroupSelectionStates()
	for gi, group := range dm.Groups() {
		s := summaries[gi]
		fmt.Fprintf(&b, "%s (%d of %d selected)\n", group.Name, s.PublishCount(), s.Total())
		for _, res := range group.Resources {
			mark := "   "
			if status := dm.Status(res.ID); status != nil {
				switch {
				case status.IsDisabled():
					mark = "[!]"
				case status.State() == publish.StatePublish:
					mark = "[x]"
				case status.State() == publish.StateRemove:
					mark = " ✗ "
				}
			}
			fmt.Fprintf(&b, "  %s %s %s", mark, res.State.Letter(), res.Path)
			if res.Info != nil {
				fmt.Fprintf(&b, "  <%s>", res.Info.Type)
			}
			b.WriteString("\n")
			for _, related := range dm.RelatedResources(res.ID) {
				fmt.Fprintf(&b, "        ↳ %s %s", related.State.Letter(), related.Path)
				if related.Info != nil {
					fmt.Fprintf(&b, "  <%s>", related.Info.Type)
				}
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager shows content using the ov pager
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Do not write the content back to the terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
