package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/mpetersen/hardback/internal/googlebooks"
)

// bookItem wraps a volume for the list component.
type bookItem struct {
	volume googlebooks.Volume
}

func (b bookItem) Title() string {
	title := b.volume.VolumeInfo.Title
	if title == "" {
		title = "(untitled)"
	}
	return truncate(title, 70)
}

func (b bookItem) Description() string {
	authors := b.volume.AuthorLine()
	if authors == "" {
		authors = "Unknown author"
	}
	if b.volume.HasRating() {
		return truncate(fmt.Sprintf("%s | %.1f/5", authors, b.volume.VolumeInfo.AverageRating), 70)
	}
	return truncate(authors, 70)
}

func (b bookItem) FilterValue() string { return b.volume.VolumeInfo.Title }

func bookItems(volumes []googlebooks.Volume) []list.Item {
	items := make([]list.Item, len(volumes))
	for i, volume := range volumes {
		items[i] = bookItem{volume: volume}
	}
	return items
}

func newBookList(title string) list.Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = titleStyle
	return l
}

// truncate shortens s to at most max runes, appending an ellipsis when it
// cuts anything off.
func truncate(s string, max int) string {
	if max <= 3 {
		max = 3
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
