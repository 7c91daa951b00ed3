// Package tui renders the create-task form in the terminal.
//
// It follows The Elm Architecture used across our bubbletea front ends:
// Model holds the state, Update reacts to messages, View renders a string.
// All form semantics (validation, submission lifecycle, reset rules) live in
// the form controller; this package only collects input and paints state.
package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/form"
	"taskdeck/internal/models"
)

// focus targets, in tab order.
const (
	focusTitle = iota
	focusContent
	focusTag
	focusStatus
	focusSubmit
	focusCount
)

var statusChoices = []models.TaskStatus{
	models.StatusPending,
	models.StatusInProgress,
	models.StatusCompleted,
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).MarginBottom(1)
	labelStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	buttonStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	focusedButton = buttonStyle.Copy().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62"))
)

type tagsLoadedMsg struct{ err error }

type submitFinishedMsg struct{ outcome form.Outcome }

// Model is the bubbletea model for the create-task form.
type Model struct {
	ctrl    *form.Controller
	notices *Notices

	title   textinput.Model
	content textarea.Model
	tags    []models.Tag
	tagIdx  int // index into tags, -1 = none selected
	stIdx   int // index into statusChoices, -1 = none selected

	focus    int
	tagsErr  bool
	quitting bool
	width    int

	spin spinner.Model
}

// NewModel builds the form model around a controller and its notice sink.
func NewModel(ctrl *form.Controller, notices *Notices) Model {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.Prompt = "> "
	ti.Focus()

	ta := textarea.New()
	ta.Placeholder = "Details..."
	ta.SetWidth(60)
	ta.SetHeight(5)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectorStyle

	return Model{
		ctrl:    ctrl,
		notices: notices,
		title:   ti,
		content: ta,
		tagIdx:  -1,
		stIdx:   -1,
		spin:    sp,
	}
}

// Init loads the tag options and starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTagsCmd(), textinput.Blink)
}

func (m Model) loadTagsCmd() tea.Cmd {
	return func() tea.Msg {
		return tagsLoadedMsg{err: m.ctrl.LoadTags(context.Background())}
	}
}

func (m Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		return submitFinishedMsg{outcome: m.ctrl.Submit(context.Background())}
	}
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tagsLoadedMsg:
		tags, err := m.ctrl.Tags()
		m.tags = tags
		m.tagsErr = err != nil
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.Submitting() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case submitFinishedMsg:
		if msg.outcome == form.OutcomeSuccess {
			m.resetInputs()
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.ctrl.Close()
		m.quitting = true
		return m, tea.Quit
	}

	// All inputs and the submit control are disabled while a submission is
	// in flight.
	if m.ctrl.Submitting() {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.Close()
		m.quitting = true
		return m, tea.Quit

	case tea.KeyTab:
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil

	case tea.KeyShiftTab:
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil

	case tea.KeyLeft, tea.KeyRight:
		if m.focus == focusTag || m.focus == focusStatus {
			m.cycle(msg.Type == tea.KeyRight)
			return m, nil
		}

	case tea.KeyEnter:
		if m.focus == focusSubmit {
			return m, tea.Batch(m.spin.Tick, m.submitCmd())
		}
		if m.focus != focusContent {
			m.setFocus((m.focus + 1) % focusCount)
			return m, nil
		}
	}

	return m.updateFocused(msg)
}

// updateFocused routes a message to whichever input owns the focus and syncs
// its value into the controller.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
		m.ctrl.SetTitle(m.title.Value())
	case focusContent:
		m.content, cmd = m.content.Update(msg)
		m.ctrl.SetContent(m.content.Value())
	}
	return m, cmd
}

func (m *Model) setFocus(target int) {
	m.focus = target
	m.title.Blur()
	m.content.Blur()
	switch target {
	case focusTitle:
		m.title.Focus()
	case focusContent:
		m.content.Focus()
	}
}

// cycle moves the tag or status selection one step and records it.
func (m *Model) cycle(forward bool) {
	step := 1
	if !forward {
		step = -1
	}
	switch m.focus {
	case focusTag:
		if len(m.tags) == 0 {
			return
		}
		m.tagIdx = (m.tagIdx + step + len(m.tags)) % len(m.tags)
		m.ctrl.SetTag(strconv.Itoa(m.tags[m.tagIdx].ID))
	case focusStatus:
		m.stIdx = (m.stIdx + step + len(statusChoices)) % len(statusChoices)
		m.ctrl.SetStatus(statusChoices[m.stIdx])
	}
}

// resetInputs clears the visible inputs after a successful submission. The
// controller has already reset its own state.
func (m *Model) resetInputs() {
	m.title.SetValue("")
	m.content.SetValue("")
	m.tagIdx = -1
	m.stIdx = -1
	m.setFocus(focusTitle)
}

// View renders the form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	errs := m.ctrl.FieldErrors()
	submitting := m.ctrl.Submitting()
	var b []string

	b = append(b, headerStyle.Render("New Task"))

	b = append(b, labelStyle.Render("Title"))
	b = append(b, m.title.View())
	if msg, ok := errs["title"]; ok {
		b = append(b, errorStyle.Render(msg))
	}

	b = append(b, "", labelStyle.Render("Content"))
	b = append(b, m.content.View())
	if msg, ok := errs["content"]; ok {
		b = append(b, errorStyle.Render(msg))
	}

	b = append(b, "", labelStyle.Render("Tag"))
	b = append(b, m.renderTagSelector())
	if msg, ok := errs["tag"]; ok {
		b = append(b, errorStyle.Render(msg))
	}

	b = append(b, "", labelStyle.Render("Status"))
	b = append(b, m.renderStatusSelector())
	if msg, ok := errs["status"]; ok {
		b = append(b, errorStyle.Render(msg))
	}

	// The loading indicator replaces the submit label; never both.
	b = append(b, "")
	if submitting {
		b = append(b, buttonStyle.Render(m.spin.View()))
	} else if m.focus == focusSubmit {
		b = append(b, focusedButton.Render("[ Create ]"))
	} else {
		b = append(b, buttonStyle.Render("[ Create ]"))
	}

	if text, isErr := m.notices.Last(); text != "" {
		b = append(b, "")
		if isErr {
			b = append(b, errorStyle.Render(text))
		} else {
			b = append(b, successStyle.Render(text))
		}
	}

	b = append(b, "", dimStyle.Render("tab: next field • ←/→: choose • enter: create • esc: quit"))
	return lipgloss.JoinVertical(lipgloss.Left, b...)
}

func (m Model) renderTagSelector() string {
	if m.tagsErr {
		return errorStyle.Render("could not load tags")
	}
	if len(m.tags) == 0 {
		return dimStyle.Render("(no tags available)")
	}
	if m.tagIdx < 0 {
		return dimStyle.Render("< choose a tag >")
	}
	return selectorStyle.Render("< " + m.tags[m.tagIdx].Name + " >")
}

func (m Model) renderStatusSelector() string {
	if m.stIdx < 0 {
		return dimStyle.Render("< choose a status >")
	}
	return selectorStyle.Render("< " + string(statusChoices[m.stIdx]) + " >")
}
