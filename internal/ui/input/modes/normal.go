package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"cmspublish/internal/ui/input/types"
)

type NormalMode struct {
	keys KeyMap
}

func NewNormalMode(keys KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.Type == tea.KeyCtrlC {
		return []types.Action{types.QuitAction{Force: true}}, true
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case key.Matches(msg, m.keys.Top):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case key.Matches(msg, m.keys.Bottom):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, m.keys.Publish):
		// Space acts on the resource or, on a header, the whole group
		if ctx.IsOnGroup() || ctx.CurrentResourceID() != "" {
			return []types.Action{types.TogglePublishAction{}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.Remove):
		if ctx.IsOnGroup() || ctx.CurrentResourceID() != "" {
			return []types.Action{types.ToggleRemoveAction{}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.SelectAll):
		return []types.Action{types.SelectAllAction{}}, true

	case key.Matches(msg, m.keys.DeselectAll):
		return []types.Action{types.DeselectAllAction{}}, true

	case key.Matches(msg, m.keys.Related):
		return []types.Action{types.ToggleOptionAction{Option: "related"}}, true

	case key.Matches(msg, m.keys.Siblings):
		return []types.Action{types.ToggleOptionAction{Option: "siblings"}}, true

	case key.Matches(msg, m.keys.Refresh):
		return []types.Action{types.RefreshAction{}}, true

	case key.Matches(msg, m.keys.Search):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch}}, true

	case key.Matches(msg, m.keys.Clear):
		if ctx.FilterQuery() != "" {
			return []types.Action{types.ClearFilterAction{}}, true
		}
		return nil, true // Consume the key even if no action

	case key.Matches(msg, m.keys.List):
		return []types.Action{types.ShowPublishListAction{}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}}, true

	case key.Matches(msg, m.keys.Submit):
		if ctx.CanSubmit() {
			return []types.Action{types.ChangeModeAction{Mode: types.ModeConfirm}}, true
		}
		return nil, true

	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}
