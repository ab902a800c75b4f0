package ui

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"cmspublish/internal/config"
	"cmspublish/internal/domain"
	"cmspublish/internal/eventbus"
	"cmspublish/internal/logic"
	"cmspublish/internal/publish"
	"cmspublish/internal/ui/input"
	inputtypes "cmspublish/internal/ui/input/types"
	uilogic "cmspublish/internal/ui/logic"
	"cmspublish/internal/ui/views"
)

const sourceTimeout = 30 * time.Second

// Model is the publish dialog. It fetches the publish list from a source,
// drives a publish.DataModel with the user's key presses and submits the
// resulting request.
type Model struct {
	bus     eventbus.EventBus
	config  *config.Config
	source  logic.ListSource
	options domain.PublishOptions

	dataModel  *publish.DataModel
	checkBoxes map[string]string // id -> rendered checkbox, refreshed by the update handler
	hidden     map[string]bool   // already published ids left out of the list
	rows       []views.Row
	canSubmit  bool
	loadSeq    int

	// UI-specific state
	width         int
	height        int
	nav           *uilogic.Navigator
	filterQuery   string
	loading       bool
	statusMessage string
	statusIsError bool
	inPagerMode   bool
	now           func() time.Time

	help         help.Model
	helpRender   *HelpRenderer
	renderer     *views.Renderer
	inputHandler *input.Handler
	pager        *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, source logic.ListSource) *Model {
	return &Model{
		bus:          bus,
		config:       cfg,
		source:       source,
		options:      cfg.Publish.Options(),
		checkBoxes:   make(map[string]string),
		hidden:       make(map[string]bool),
		nav:          uilogic.NewNavigator(),
		now:          time.Now,
		help:         help.New(),
		helpRender:   NewHelpRenderer(),
		renderer:     views.NewRenderer(cfg.UISettings.ShowDates),
		inputHandler: input.New(),
		pager:        NewPagerOps(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Options returns the current publish options
func (m *Model) Options() domain.PublishOptions {
	return m.options
}

// DataModel returns the model built from the last fetched list
func (m *Model) DataModel() *publish.DataModel {
	return m.dataModel
}

// Init starts loading the publish list
func (m *Model) Init() tea.Cmd {
	return m.fetchGroups(false)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		ctx := m.inputContext()
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		m.updateViewportHeight()

		return m, tea.Batch(cmds...)

	default:
		inputCmd := m.inputHandler.Update(msg)
		_, cmd := m.handleNonKeyboardMsg(msg)
		return m, tea.Batch(inputCmd, cmd)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	inputMode := ""
	textInput := ""
	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeSearch:
		inputMode = "search"
		if ti := m.inputHandler.TextInput(); ti != nil {
			textInput = ti.View()
		}
	case inputtypes.ModeConfirm:
		inputMode = "confirm"
	}

	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Rows:           m.rows,
		SelectedIndex:  m.nav.SelectedIndex(),
		ViewportOffset: m.nav.ViewportOffset(),
		ViewportHeight: m.nav.ViewportHeight(),
		Loading:        m.loading,
		Options:        m.options,
		FilterQuery:    m.filterQuery,
		InputMode:      inputMode,
		TextInput:      textInput,
		StatusMessage:  m.statusMessage,
		StatusIsError:  m.statusIsError,
		CanSubmit:      m.canSubmit,
		HiddenCount:    len(m.hidden),
		HelpView:       m.help.View(m.inputHandler.Keys()),
		Now:            m.now(),
	}
	if m.dataModel != nil {
		state.PublishCount = len(m.dataModel.PublishIDs())
		state.RemoveCount = len(m.dataModel.RemoveIDs())
		state.ProblemCount = m.dataModel.CountProblems()
	}

	return m.renderer.Render(state)
}

// inputContext snapshots the cursor row for the input handler
func (m *Model) inputContext() *input.ModelContext {
	ctx := &input.ModelContext{
		Index:       m.nav.SelectedIndex(),
		Total:       len(m.rows),
		GroupIndex:  -1,
		Submittable: m.canSubmit && !m.loading,
		Filter:      m.filterQuery,
	}
	if row, ok := m.currentRow(); ok {
		ctx.GroupIndex = row.GroupIndex
		ctx.OnGroup = row.Kind == views.RowGroup
		if row.Kind == views.RowResource {
			ctx.ResourceID = row.Resource.ID
		}
	}
	return ctx
}

func (m *Model) currentRow() (views.Row, bool) {
	i := m.nav.SelectedIndex()
	if i < 0 || i >= len(m.rows) {
		return views.Row{}, false
	}
	return m.rows[i], true
}

// fetchGroups returns a command loading the publish list with the current
// options. keepSelection carries the publish and remove marks over to the
// new list.
func (m *Model) fetchGroups(keepSelection bool) tea.Cmd {
	m.loadSeq++
	m.loading = true
	seq, source, opts := m.loadSeq, m.source, m.options

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sourceTimeout)
		defer cancel()

		groups, err := source.FetchGroups(ctx, opts)
		return listLoadedMsg{seq: seq, groups: groups, keepSelection: keepSelection, err: err}
	}
}

// submit returns a command sending the current request to the source
func (m *Model) submit() tea.Cmd {
	if m.dataModel == nil || !m.dataModel.CanSubmit() {
		return nil
	}

	req := domain.PublishRequest{
		PublishIDs: m.dataModel.PublishIDs(),
		RemoveIDs:  m.dataModel.RemoveIDs(),
		Options:    m.options,
	}
	m.loading = true
	m.setStatus(fmt.Sprintf("Submitting %d resources...", len(req.PublishIDs)+len(req.RemoveIDs)), false)
	source := m.source

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sourceTimeout)
		defer cancel()

		result, err := source.Submit(ctx, req)
		return submitResultMsg{result: result, err: err}
	}
}

// rebuildModel replaces the data model with one built from groups
func (m *Model) rebuildModel(groups []domain.PublishGroup, keepSelection bool) {
	var toPublish, toRemove []string
	if keepSelection && m.dataModel != nil {
		for _, id := range m.dataModel.PublishIDs() {
			// skip related resources riding along
			if status := m.dataModel.Status(id); status != nil && status.State() == publish.StatePublish {
				toPublish = append(toPublish, id)
			}
		}
		toRemove = m.dataModel.RemoveIDs()
	}

	m.checkBoxes = make(map[string]string)
	dm := publish.NewDataModel(groups, publish.UpdateHandlerFunc(m.onItemUpdate))
	m.dataModel = dm

	m.hidden = make(map[string]bool)
	if m.config.Publish.HideAlreadyPublished {
		for _, id := range dm.IDsOfAlreadyPublishedResources() {
			m.hidden[id] = true
		}
	}

	// Restore marks before registering the callback so they count as one change
	for _, id := range toPublish {
		dm.Signal(publish.SignalPublish, id)
	}
	for _, id := range toRemove {
		dm.Signal(publish.SignalRemove, id)
	}
	dm.SetSelectionChangeAction(m.onSelectionChange)

	if !keepSelection && m.config.Publish.AutoSelectFirstGroup && len(groups) > 0 {
		dm.SignalGroup(publish.SignalPublish, 0)
	} else {
		m.onSelectionChange()
	}

	if m.bus != nil {
		m.bus.Publish(eventbus.PublishListLoadedEvent{
			Groups:    len(groups),
			Resources: dm.CountResources(func(domain.PublishResource) bool { return true }),
			Problems:  dm.CountProblems(),
		})
	}
}

// onItemUpdate is the update handler of every item status
func (m *Model) onItemUpdate(id string, status *publish.ItemStatus) {
	m.checkBoxes[id] = m.renderer.ItemCheckBox(status.State(), status.IsDisabled())
	if m.bus != nil {
		m.bus.Publish(eventbus.ItemUpdatedEvent{ID: id, State: status.State().String()})
	}
}

// onSelectionChange runs once after every signal call on the data model
func (m *Model) onSelectionChange() {
	m.canSubmit = m.dataModel.CanSubmit()
	m.refreshRows()

	if m.bus != nil {
		m.bus.Publish(eventbus.SelectionChangedEvent{
			PublishCount: len(m.dataModel.PublishIDs()),
			RemoveCount:  len(m.dataModel.RemoveIDs()),
			CanSubmit:    m.canSubmit,
		})
	}
}

// checkBox returns the cached checkbox of id, rendering it on first use
func (m *Model) checkBox(id string) string {
	if box, ok := m.checkBoxes[id]; ok {
		return box
	}
	status := m.dataModel.Status(id)
	if status == nil {
		return ""
	}
	box := m.renderer.ItemCheckBox(status.State(), status.IsDisabled())
	m.checkBoxes[id] = box
	return box
}

// refreshRows rebuilds the visible rows and keeps the cursor in range
func (m *Model) refreshRows() {
	m.rows = buildRows(m.dataModel, m.filterQuery, m.hidden, m.config.UISettings.ShowRelated, m.checkBox)
	m.nav.SetTotal(len(m.rows))
}

func (m *Model) setFilter(query string) {
	if query == m.filterQuery {
		return
	}
	m.filterQuery = query
	m.nav.Reset()
	m.refreshRows()
}

func (m *Model) setStatus(message string, isError bool) {
	m.statusMessage = message
	m.statusIsError = isError
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	log.Printf("processAction: %T", action)
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.nav.Move(a.Direction)

	case inputtypes.TogglePublishAction:
		m.togglePublish()

	case inputtypes.ToggleRemoveAction:
		m.toggleRemove()

	case inputtypes.SelectAllAction:
		if m.dataModel != nil {
			m.dataModel.SignalAll(publish.SignalPublish)
		}

	case inputtypes.DeselectAllAction:
		if m.dataModel != nil {
			m.dataModel.SignalAll(publish.SignalUnpublish)
		}

	case inputtypes.ToggleOptionAction:
		switch a.Option {
		case "related":
			m.options.IncludeRelated = !m.options.IncludeRelated
		case "siblings":
			m.options.IncludeSiblings = !m.options.IncludeSiblings
		}
		if m.bus != nil {
			m.bus.Publish(eventbus.OptionsChangedEvent{Options: m.options})
		}
		return m.fetchGroups(true)

	case inputtypes.RefreshAction:
		return m.fetchGroups(true)

	case inputtypes.UpdateTextAction:
		m.setFilter(a.Text)

	case inputtypes.SubmitTextAction:
		m.setFilter(a.Text)

	case inputtypes.CancelTextAction, inputtypes.ClearFilterAction:
		m.setFilter("")

	case inputtypes.ShowPublishListAction:
		return m.showInPager(m.helpRender.RenderPublishList(m.dataModel))

	case inputtypes.ToggleHelpAction:
		return m.showInPager(m.helpRender.RenderHelpContent(m.inputHandler.Keys()))

	case inputtypes.SubmitAction:
		return m.submit()

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

// togglePublish flips the publish mark of the cursor row. On a group header
// it publishes the whole group unless every item already is.
func (m *Model) togglePublish() {
	row, ok := m.currentRow()
	if !ok || m.dataModel == nil {
		return
	}

	switch row.Kind {
	case views.RowGroup:
		sig := publish.SignalPublish
		if summary := row.Summary; summary != nil && summary.PublishCheckState() == publish.CheckOn {
			sig = publish.SignalUnpublish
		}
		m.dataModel.SignalGroup(sig, row.GroupIndex)

	case views.RowResource:
		sig := publish.SignalPublish
		if status := m.dataModel.Status(row.Resource.ID); status != nil && status.State() == publish.StatePublish {
			sig = publish.SignalUnpublish
		}
		m.dataModel.Signal(sig, row.Resource.ID)
	}
}

// toggleRemove flips the remove mark of the cursor row or its whole group
func (m *Model) toggleRemove() {
	row, ok := m.currentRow()
	if !ok || m.dataModel == nil {
		return
	}

	switch row.Kind {
	case views.RowGroup:
		sig := publish.SignalRemove
		if summary := row.Summary; summary != nil && summary.RemoveCheckState() == publish.CheckOn {
			sig = publish.SignalUnremove
		}
		m.dataModel.SignalGroup(sig, row.GroupIndex)

	case views.RowResource:
		sig := publish.SignalRemove
		if status := m.dataModel.Status(row.Resource.ID); status != nil && status.State() == publish.StateRemove {
			sig = publish.SignalUnremove
		}
		m.dataModel.Signal(sig, row.Resource.ID)
	}
}

// showInPager returns a command that shows content in the ov pager
func (m *Model) showInPager(content string) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg { return pagerMsg{err: fmt.Errorf("pager unavailable")} }
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.ShowInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		if msg.seq != m.loadSeq {
			// A newer request is in flight
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			log.Printf("Failed to load publish list: %v", msg.err)
			m.setStatus(fmt.Sprintf("Failed to load publish list: %v", msg.err), true)
			if m.bus != nil {
				m.bus.Publish(eventbus.ErrorEvent{Message: "load publish list", Err: msg.err})
			}
			return m, nil
		}
		m.rebuildModel(msg.groups, msg.keepSelection)
		return m, nil

	case submitResultMsg:
		m.loading = false
		if msg.err != nil {
			log.Printf("Publish failed: %v", msg.err)
			m.setStatus(fmt.Sprintf("Publish failed: %v", msg.err), true)
			if m.bus != nil {
				m.bus.Publish(eventbus.ErrorEvent{Message: "submit publish request", Err: msg.err})
			}
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Published %d, removed %d (job %s)", msg.result.Published, msg.result.Removed, msg.result.JobID), false)
		if m.bus != nil {
			m.bus.Publish(eventbus.PublishSubmittedEvent{Result: msg.result})
		}
		return m, tea.Batch(
			m.fetchGroups(false),
			tea.Tick(5*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} }),
		)

	case EventMsg:
		if e, ok := msg.Event.(eventbus.ErrorEvent); ok {
			m.setStatus(e.Message, true)
		}
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.setStatus("", false)
		return m, nil
	}

	return m, nil
}

// updateViewportHeight calculates the available height for the publish list
func (m *Model) updateViewportHeight() {
	if m.height <= 0 {
		return
	}

	// title (2 lines), status and help (3 lines), container padding (2 lines)
	reservedLines := 7
	if m.inputHandler.CurrentMode() == inputtypes.ModeSearch {
		reservedLines += 2
	}
	m.nav.SetViewportHeight(m.height - reservedLines)
}
