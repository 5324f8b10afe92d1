package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mpetersen/hardback/internal/googlebooks"
)

// popularResultMsg carries the popular shelf, or its classified failure.
// At most one of the two fields is populated.
type popularResultMsg struct {
	volumes []googlebooks.Volume
	errMsg  string
}

// homeModel renders the curated popular shelf.
type homeModel struct {
	ctx    context.Context
	finder googlebooks.Finder
	log    zerolog.Logger
	keys   keyMap

	list    list.Model
	spinner spinner.Model
	loading bool
	errMsg  string
}

func newHomeModel(ctx context.Context, finder googlebooks.Finder, log zerolog.Logger, keys keyMap) *homeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = subtitleStyle
	return &homeModel{
		ctx:     ctx,
		finder:  finder,
		log:     log,
		keys:    keys,
		list:    newBookList("Popular books"),
		spinner: s,
	}
}

// load fetches the popular shelf. Failures come back classified; the raw
// error only reaches the log.
func (m *homeModel) load() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		volumes, err := m.finder.Popular(m.ctx)
		if err != nil {
			m.log.Error().Err(err).Msg("popular shelf fetch failed")
			return popularResultMsg{errMsg: googlebooks.Classify(err, googlebooks.OpSearch)}
		}
		return popularResultMsg{volumes: volumes}
	})
}

func (m *homeModel) setSize(width, height int) {
	m.list.SetSize(width-4, height-6)
}

// selected returns the highlighted volume, if any.
func (m *homeModel) selected() *googlebooks.Volume {
	item, ok := m.list.SelectedItem().(bookItem)
	if !ok {
		return nil
	}
	volume := item.volume
	return &volume
}

func (m *homeModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case popularResultMsg:
		m.loading = false
		if msg.errMsg != "" {
			m.errMsg = msg.errMsg
			return nil
		}
		m.errMsg = ""
		return m.list.SetItems(bookItems(msg.volumes))
	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Retry) && !m.loading && (m.errMsg != "" || len(m.list.Items()) == 0) {
			return m.load()
		}
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return cmd
	}
	return nil
}

func (m *homeModel) view() string {
	switch {
	case m.loading:
		return m.spinner.View() + dimStyle.Render(" Loading popular books...")
	case m.errMsg != "":
		return errorStyle.Render(m.errMsg) + "\n\n" + dimStyle.Render("Press r to retry.")
	case len(m.list.Items()) == 0:
		return emptyStyle.Render("No books found.") + "\n\n" + dimStyle.Render("Press r to retry, / to search.")
	default:
		return m.list.View()
	}
}
