package modes

import (
	"github.com/charmbracelet/bubbles/textinput"

	"cmspublish/internal/ui/input/types"
)

// SearchMode edits the fuzzy path filter
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "Filter: ", ti),
	}
}
