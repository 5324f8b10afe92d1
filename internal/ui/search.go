package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mpetersen/hardback/internal/googlebooks"
	"github.com/mpetersen/hardback/internal/query"
)

// debounceMsg is the quiescence timer firing for one text generation.
type debounceMsg struct {
	gen int
}

// searchResultMsg carries one search call's outcome back into the model.
// The generation decides whether it may still be applied.
type searchResultMsg struct {
	gen     int
	query   string
	volumes []googlebooks.Volume
	errMsg  string
}

// searchModel owns the search screen: the text input, the debounce
// controller, and the result list. All of it dies with the screen.
type searchModel struct {
	ctx    context.Context
	finder googlebooks.Finder
	log    zerolog.Logger
	keys   keyMap

	input     textinput.Model
	list      list.Model
	ctrl      *query.Controller
	spinner   spinner.Model
	searching bool
	searched  bool
	errMsg    string
	lastQuery string
}

func newSearchModel(ctx context.Context, finder googlebooks.Finder, log zerolog.Logger, keys keyMap) *searchModel {
	input := textinput.New()
	input.Placeholder = "Search the catalog"
	input.Prompt = "/ "
	input.CharLimit = 200
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = subtitleStyle

	return &searchModel{
		ctx:     ctx,
		finder:  finder,
		log:     log,
		keys:    keys,
		input:   input,
		list:    newBookList("Results"),
		ctrl:    query.New(),
		spinner: s,
	}
}

func (m *searchModel) init() tea.Cmd {
	return textinput.Blink
}

func (m *searchModel) setSize(width, height int) {
	m.input.Width = width - 8
	m.list.SetSize(width-4, height-9)
}

// teardown suppresses any in-flight result from mutating screen state.
// Called when the user navigates away from the search screen for good.
func (m *searchModel) teardown() {
	m.ctrl.Teardown()
}

// selected returns the highlighted volume, if any.
func (m *searchModel) selected() *googlebooks.Volume {
	item, ok := m.list.SelectedItem().(bookItem)
	if !ok {
		return nil
	}
	volume := item.volume
	return &volume
}

func (m *searchModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounceMsg:
		text, ok := m.ctrl.TimerFired(msg.gen)
		if !ok {
			return nil
		}
		m.searching = true
		m.errMsg = ""
		return tea.Batch(m.spinner.Tick, m.dispatch(text, msg.gen))

	case searchResultMsg:
		if !m.ctrl.Accept(msg.gen) {
			// Stale: belongs to superseded text or a torn-down screen.
			return nil
		}
		m.ctrl.Resolve(msg.gen)
		m.searching = false
		m.searched = true
		m.lastQuery = msg.query
		if msg.errMsg != "" {
			m.errMsg = msg.errMsg
			return m.list.SetItems(nil)
		}
		m.errMsg = ""
		return m.list.SetItems(bookItems(msg.volumes))

	case spinner.TickMsg:
		if !m.searching {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		// Plain letters belong to the input, so retry is ctrl+r here. The
		// controller hands the retry its own generation; typed-over queries
		// refuse to re-arm.
		if msg.String() == "ctrl+r" && m.errMsg != "" {
			text, ok := m.ctrl.Retry()
			if !ok {
				return nil
			}
			m.searching = true
			m.errMsg = ""
			m.lastQuery = text
			return tea.Batch(m.spinner.Tick, m.dispatch(text, m.ctrl.Generation()))
		}
		switch msg.Type {
		case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return cmd
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds := []tea.Cmd{cmd}

		if value := m.input.Value(); value != before {
			switch m.ctrl.SetText(value) {
			case query.ActionClearResults:
				m.searching = false
				m.searched = false
				m.errMsg = ""
				cmds = append(cmds, m.list.SetItems(nil))
			case query.ActionStartTimer:
				m.errMsg = ""
				gen := m.ctrl.Generation()
				cmds = append(cmds, tea.Tick(query.Quiescence, func(time.Time) tea.Msg {
					return debounceMsg{gen: gen}
				}))
			}
		}
		return tea.Batch(cmds...)
	}

	// Component messages like cursor blink still belong to the input.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// dispatch issues one search call. The generation travels with the result
// so stale responses can be recognized and dropped on arrival.
func (m *searchModel) dispatch(text string, gen int) tea.Cmd {
	return func() tea.Msg {
		volumes, err := m.finder.Search(m.ctx, text)
		if err != nil {
			m.log.Error().Err(err).Str("query", text).Msg("search failed")
			return searchResultMsg{gen: gen, query: text, errMsg: googlebooks.Classify(err, googlebooks.OpSearch)}
		}
		return searchResultMsg{gen: gen, query: text, volumes: volumes}
	}
}

func (m *searchModel) view() string {
	body := m.input.View() + "\n\n"
	switch {
	case m.searching:
		body += m.spinner.View() + dimStyle.Render(" Searching...")
	case m.errMsg != "":
		body += errorStyle.Render(m.errMsg) + "\n\n" + dimStyle.Render("Press ctrl+r to retry.")
	case m.searched && len(m.list.Items()) == 0:
		body += emptyStyle.Render(fmt.Sprintf("No books found for %q.", m.lastQuery))
	case m.ctrl.Text() == "":
		body += dimStyle.Render("Type to search the catalog.")
	default:
		body += m.list.View()
	}
	return body
}
