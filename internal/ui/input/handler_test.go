package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmspublish/internal/ui/input/types"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNormalModeKeys(t *testing.T) {
	ctx := &ModelContext{Total: 3, ResourceID: "a"}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want types.Action
	}{
		{"down", runes("j"), types.NavigateAction{Direction: "down"}},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, types.NavigateAction{Direction: "up"}},
		{"bottom", runes("G"), types.NavigateAction{Direction: "end"}},
		{"publish", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, types.TogglePublishAction{}},
		{"remove", runes("x"), types.ToggleRemoveAction{}},
		{"select all", runes("a"), types.SelectAllAction{}},
		{"deselect all", runes("A"), types.DeselectAllAction{}},
		{"related", runes("R"), types.ToggleOptionAction{Option: "related"}},
		{"siblings", runes("S"), types.ToggleOptionAction{Option: "siblings"}},
		{"reload", runes("r"), types.RefreshAction{}},
		{"list", runes("v"), types.ShowPublishListAction{}},
		{"help", runes("?"), types.ToggleHelpAction{}},
		{"quit", runes("q"), types.QuitAction{}},
		{"force quit", tea.KeyMsg{Type: tea.KeyCtrlC}, types.QuitAction{Force: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New()
			actions, _ := h.HandleKey(tt.msg, ctx)
			require.Len(t, actions, 1)
			assert.Equal(t, tt.want, actions[0])
		})
	}
}

func TestToggleNeedsTarget(t *testing.T) {
	h := New()
	actions, _ := h.HandleKey(runes("x"), &ModelContext{Total: 2})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("x"), &ModelContext{Total: 2, OnGroup: true})
	assert.Equal(t, []types.Action{types.ToggleRemoveAction{}}, actions)
}

func TestSubmitRequiresSelection(t *testing.T) {
	h := New()
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	actions, _ := h.HandleKey(enter, &ModelContext{})
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())

	_, _ = h.HandleKey(enter, &ModelContext{Submittable: true})
	assert.Equal(t, types.ModeConfirm, h.CurrentMode())

	actions, _ = h.HandleKey(runes("y"), &ModelContext{Submittable: true})
	assert.Equal(t, []types.Action{types.SubmitAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestConfirmCancel(t *testing.T) {
	h := New()
	_, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, &ModelContext{Submittable: true})

	actions, _ := h.HandleKey(runes("j"), &ModelContext{Submittable: true})
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeConfirm, h.CurrentMode())

	actions, _ = h.HandleKey(runes("n"), &ModelContext{Submittable: true})
	assert.Empty(t, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestSearchMode(t *testing.T) {
	h := New()
	ctx := &ModelContext{}

	_, _ = h.HandleKey(runes("/"), ctx)
	require.Equal(t, types.ModeSearch, h.CurrentMode())
	require.NotNil(t, h.TextInput())

	actions, _ := h.HandleKey(runes("n"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "n"}}, actions)
	actions, _ = h.HandleKey(runes("e"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "ne"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, []types.Action{types.SubmitTextAction{Text: "ne", Mode: types.ModeSearch}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestSearchStartsFromActiveFilter(t *testing.T) {
	h := New()
	ctx := &ModelContext{Filter: "news"}

	_, _ = h.HandleKey(runes("/"), ctx)
	assert.Equal(t, "news", h.TextInput().Value())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, []types.Action{types.CancelTextAction{}}, actions)
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestEscClearsFilter(t *testing.T) {
	h := New()
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	actions, _ := h.HandleKey(esc, &ModelContext{})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(esc, &ModelContext{Filter: "x"})
	assert.Equal(t, []types.Action{types.ClearFilterAction{}}, actions)
}
