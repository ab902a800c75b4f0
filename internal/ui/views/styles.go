package views

import (
	"github.com/charmbracelet/lipgloss"

	"cmspublish/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Confirm       lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Filter        lipgloss.Style
	Option        lipgloss.Style
	ConfirmBox    lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Highlight     lipgloss.Style
	GroupName     lipgloss.Style
	Publish       lipgloss.Style
	Remove        lipgloss.Style
	Problem       lipgloss.Style
	Disabled      lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
	SelectionBg   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Confirm: lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Filter: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Option: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		ConfirmBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2).
			BorderForeground(lipgloss.Color("99")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		GroupName:     lipgloss.NewStyle().Bold(true),
		Publish:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Remove:        lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Problem:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Disabled:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
	}
}

// GetStateColor returns the color of the state letter of a resource
func GetStateColor(state domain.ResourceState) string {
	switch state {
	case domain.ResourceNew:
		return "78" // green
	case domain.ResourceChanged:
		return "33" // blue
	case domain.ResourceDeleted:
		return "203" // red
	default:
		return "241" // gray
	}
}
