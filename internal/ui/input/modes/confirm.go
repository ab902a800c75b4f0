package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"cmspublish/internal/ui/input/types"
)

// ConfirmMode asks before the publish request is submitted
type ConfirmMode struct{}

func NewConfirmMode() *ConfirmMode {
	return &ConfirmMode{}
}

func (m *ConfirmMode) Name() string {
	return "confirm"
}

func (m *ConfirmMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *ConfirmMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "y", "Y", "enter":
		return []types.Action{
			types.SubmitAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	case "n", "N", "esc", "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}

	// Swallow everything else while the prompt is open
	return nil, true
}
