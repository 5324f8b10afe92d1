package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mpetersen/hardback/internal/googlebooks"
)

type screen int

const (
	screenHome screen = iota
	screenSearch
	screenDetail
)

// Options configure the UI runtime.
type Options struct {
	Context  context.Context
	Finder   googlebooks.Finder
	Logger   zerolog.Logger
	VolumeID string // open this volume's detail screen directly
}

// Model is the root bubbletea model. It owns the screen stack; each screen
// owns its own query text, results, and loading/error flags.
type Model struct {
	ctx    context.Context
	finder googlebooks.Finder
	log    zerolog.Logger
	keys   keyMap
	help   help.Model

	screen   screen
	returnTo screen
	home     *homeModel
	search   *searchModel
	detail   *detailModel

	// detailToken distinguishes detail screen instances, so a lookup that
	// resolves after its screen closed cannot touch a newer one.
	detailToken int

	width    int
	height   int
	showHelp bool
}

// NewModel builds the root model. The home shelf always loads; a volume id
// opens the detail screen on top of it.
func NewModel(opts Options) *Model {
	keys := DefaultKeyMap()
	m := &Model{
		ctx:    opts.Context,
		finder: opts.Finder,
		log:    opts.Logger,
		keys:   keys,
		help:   help.New(),
		home:   newHomeModel(opts.Context, opts.Finder, opts.Logger, keys),
	}
	if opts.VolumeID != "" {
		m.detailToken++
		m.detail = newDetailFromID(m.ctx, m.finder, m.log, m.keys, m.detailToken, opts.VolumeID)
		m.screen = screenDetail
		m.returnTo = screenHome
	}
	return m
}

// Run boots the UI and blocks until the user quits or the context ends.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		// Context cancellation (SIGINT/SIGTERM) is a normal exit.
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.home.load()}
	if m.detail != nil {
		cmds = append(cmds, m.detail.init())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.home.setSize(msg.Width, msg.Height)
		if m.search != nil {
			m.search.setSize(msg.Width, msg.Height)
		}
		if m.detail != nil {
			m.detail.setSize(msg.Width, msg.Height)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)

	case popularResultMsg:
		return m, m.home.update(msg)

	case debounceMsg, searchResultMsg:
		// The controller inside the search model decides staleness; a nil
		// search model means the screen is gone and the message with it.
		if m.search != nil {
			return m, m.search.update(msg)
		}
		return m, nil

	case lookupResultMsg:
		if m.detail != nil && m.detail.token == msg.token {
			return m, m.detail.update(msg)
		}
		return m, nil
	}

	// Everything else (spinner ticks, blink) fans out; each screen guards.
	var cmds []tea.Cmd
	cmds = append(cmds, m.home.update(msg))
	if m.search != nil {
		cmds = append(cmds, m.search.update(msg))
	}
	if m.detail != nil {
		cmds = append(cmds, m.detail.update(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.teardown()
		return m, tea.Quit
	}

	switch m.screen {
	case screenHome:
		switch {
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Search):
			return m, m.openSearch()
		case key.Matches(msg, m.keys.Open):
			if volume := m.home.selected(); volume != nil {
				return m, m.openDetail(*volume, screenHome)
			}
			return m, nil
		}
		return m, m.home.update(msg)

	case screenSearch:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.closeSearch()
			return m, nil
		case key.Matches(msg, m.keys.Open):
			if volume := m.search.selected(); volume != nil {
				return m, m.openDetail(*volume, screenSearch)
			}
			return m, nil
		}
		return m, m.search.update(msg)

	case screenDetail:
		switch {
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.closeDetail()
			return m, nil
		}
		return m, m.detail.update(msg)
	}
	return m, nil
}

// openSearch builds a fresh search screen. Search state never survives the
// screen that owned it.
func (m *Model) openSearch() tea.Cmd {
	m.search = newSearchModel(m.ctx, m.finder, m.log, m.keys)
	m.search.setSize(m.width, m.height)
	m.screen = screenSearch
	return m.search.init()
}

func (m *Model) closeSearch() {
	if m.search != nil {
		m.search.teardown()
		m.search = nil
	}
	m.screen = screenHome
}

// openDetail stacks the detail screen on top of the current one, passing
// the already-fetched volume through so no second request happens.
func (m *Model) openDetail(volume googlebooks.Volume, from screen) tea.Cmd {
	m.detailToken++
	m.detail = newDetailFromVolume(m.ctx, m.finder, m.log, m.keys, m.detailToken, volume)
	m.detail.setSize(m.width, m.height)
	m.returnTo = from
	m.screen = screenDetail
	return m.detail.init()
}

func (m *Model) closeDetail() {
	m.detail = nil
	m.screen = m.returnTo
	if m.screen == screenSearch && m.search == nil {
		m.screen = screenHome
	}
}

// teardown suppresses any in-flight results before the program exits.
func (m *Model) teardown() {
	if m.search != nil {
		m.search.teardown()
	}
	m.detail = nil
}

func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenSearch:
		if m.search != nil {
			body = m.search.view()
		}
	case screenDetail:
		if m.detail != nil {
			body = m.detail.view()
		}
	default:
		body = m.home.view()
	}

	var footer string
	if m.showHelp {
		footer = m.help.FullHelpView(m.keys.FullHelp())
	} else {
		footer = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return screenStyle.Render(body + "\n\n" + footer)
}
