package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Selection actions
type TogglePublishAction struct{}

func (a TogglePublishAction) Type() string { return "toggle_publish" }

type ToggleRemoveAction struct{}

func (a ToggleRemoveAction) Type() string { return "toggle_remove" }

type SelectAllAction struct{}

func (a SelectAllAction) Type() string { return "select_all" }

type DeselectAllAction struct{}

func (a DeselectAllAction) Type() string { return "deselect_all" }

// Option actions
type ToggleOptionAction struct {
	Option string // "related" or "siblings"
}

func (a ToggleOptionAction) Type() string { return "toggle_option" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

type ClearFilterAction struct{}

func (a ClearFilterAction) Type() string { return "clear_filter" }

// Command actions
type RefreshAction struct{}

func (a RefreshAction) Type() string { return "refresh" }

type ShowPublishListAction struct{}

func (a ShowPublishListAction) Type() string { return "show_publish_list" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type SubmitAction struct{}

func (a SubmitAction) Type() string { return "submit" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
