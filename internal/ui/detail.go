package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mpetersen/hardback/internal/googlebooks"
)

// lookupResultMsg carries one lookup call's outcome. The token identifies
// which detail screen instance asked; results for closed screens are
// dropped by the root model.
type lookupResultMsg struct {
	token  int
	volume *googlebooks.Volume
	errMsg string
}

// detailModel renders one book. When opened from a list screen it already
// holds the volume and never touches the network; when opened from a bare
// id it fetches the record itself.
type detailModel struct {
	ctx    context.Context
	finder googlebooks.Finder
	log    zerolog.Logger
	keys   keyMap
	token  int

	id       string
	volume   *googlebooks.Volume
	viewport viewport.Model
	spinner  spinner.Model
	loading  bool
	errMsg   string
	notFound bool
	width    int
	height   int
}

func newDetailModel(ctx context.Context, finder googlebooks.Finder, log zerolog.Logger, keys keyMap, token int) *detailModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = subtitleStyle
	return &detailModel{
		ctx:      ctx,
		finder:   finder,
		log:      log,
		keys:     keys,
		token:    token,
		viewport: viewport.New(0, 0),
		spinner:  s,
	}
}

// newDetailFromVolume builds a detail screen from navigation parameters.
// No network call happens on this path.
func newDetailFromVolume(ctx context.Context, finder googlebooks.Finder, log zerolog.Logger, keys keyMap, token int, volume googlebooks.Volume) *detailModel {
	m := newDetailModel(ctx, finder, log, keys, token)
	m.id = volume.ID
	m.volume = &volume
	return m
}

// newDetailFromID builds a detail screen that must look the volume up.
func newDetailFromID(ctx context.Context, finder googlebooks.Finder, log zerolog.Logger, keys keyMap, token int, id string) *detailModel {
	m := newDetailModel(ctx, finder, log, keys, token)
	m.id = id
	return m
}

func (m *detailModel) init() tea.Cmd {
	if m.volume != nil {
		m.refreshContent()
		return nil
	}
	return m.lookup()
}

// lookup fetches the volume by id. The classified message is produced here;
// the not-found synthesis happens on arrival, not inside the client.
func (m *detailModel) lookup() tea.Cmd {
	m.loading = true
	m.errMsg = ""
	m.notFound = false
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		volume, err := m.finder.Lookup(m.ctx, m.id)
		if err != nil {
			m.log.Error().Err(err).Str("id", m.id).Msg("volume lookup failed")
			return lookupResultMsg{token: m.token, errMsg: googlebooks.Classify(err, googlebooks.OpLookup)}
		}
		return lookupResultMsg{token: m.token, volume: volume}
	})
}

func (m *detailModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 6
	m.refreshContent()
}

func (m *detailModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case lookupResultMsg:
		m.loading = false
		if msg.errMsg != "" {
			m.errMsg = msg.errMsg
			return nil
		}
		if msg.volume == nil || msg.volume.ID == "" {
			// Upstream answered but carried no record.
			m.notFound = true
			return nil
		}
		m.volume = msg.volume
		m.refreshContent()
		return nil
	case spinner.TickMsg:
		if !m.loading {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Retry) && (m.errMsg != "" || m.notFound) {
			return m.lookup()
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (m *detailModel) view() string {
	switch {
	case m.loading:
		return m.spinner.View() + dimStyle.Render(" Loading book...")
	case m.errMsg != "":
		return errorStyle.Render(m.errMsg) + "\n\n" + dimStyle.Render("Press r to retry, esc to go back.")
	case m.notFound:
		return emptyStyle.Render("Book not found.") + "\n\n" + dimStyle.Render("Press esc to go back.")
	case m.volume == nil:
		return ""
	default:
		return m.viewport.View()
	}
}

// refreshContent rebuilds the viewport content from the volume.
func (m *detailModel) refreshContent() {
	if m.volume == nil {
		return
	}
	info := m.volume.VolumeInfo

	var b strings.Builder
	title := info.Title
	if title == "" {
		title = "(untitled)"
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	if info.Subtitle != "" {
		b.WriteString(subtitleStyle.Render(info.Subtitle) + "\n")
	}
	b.WriteString("\n")

	writeField(&b, "Author", m.volume.AuthorLine())
	if m.volume.HasRating() {
		rating := fmt.Sprintf("%.1f/5", info.AverageRating)
		if info.RatingsCount > 0 {
			rating += fmt.Sprintf(" (%d ratings)", info.RatingsCount)
		}
		writeField(&b, "Rating", rating)
	}
	writeField(&b, "Publisher", info.Publisher)
	writeField(&b, "Published", info.PublishedDate)
	if info.PageCount > 0 {
		writeField(&b, "Pages", fmt.Sprintf("%d", info.PageCount))
	}
	writeField(&b, "Categories", strings.Join(info.Categories, ", "))
	writeField(&b, "Cover", m.volume.CoverURL())

	if info.Description != "" {
		b.WriteString("\n" + labelStyle.Render("Description") + "\n")
		b.WriteString(wrap(info.Description, m.viewport.Width))
	}

	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(labelStyle.Render(label+":") + " " + value + "\n")
}

// wrap does naive word wrapping for the description block.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	var b strings.Builder
	line := 0
	for _, word := range strings.Fields(text) {
		length := len([]rune(word))
		if line > 0 && line+1+length > width {
			b.WriteString("\n")
			line = 0
		} else if line > 0 {
			b.WriteString(" ")
			line++
		}
		b.WriteString(word)
		line += length
	}
	return b.String()
}
