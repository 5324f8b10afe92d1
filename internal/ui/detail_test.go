package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetersen/hardback/internal/googlebooks"
)

func findLookupResult(t *testing.T, msgs []tea.Msg) lookupResultMsg {
	t.Helper()
	for _, msg := range msgs {
		if result, ok := msg.(lookupResultMsg); ok {
			return result
		}
	}
	t.Fatalf("no lookupResultMsg in %#v", msgs)
	return lookupResultMsg{}
}

func TestDetail_FromVolumeNeverFetches(t *testing.T) {
	fake := &fakeFinder{}
	volume := googlebooks.Volume{
		ID: "123",
		VolumeInfo: googlebooks.VolumeInfo{
			Title:       "Book Title",
			Authors:     []string{"Author Name"},
			Description: "An excellent book.",
		},
	}

	m := newDetailFromVolume(context.Background(), fake, zerolog.Nop(), DefaultKeyMap(), 1, volume)
	m.setSize(80, 24)
	assert.Nil(t, m.init())

	assert.Empty(t, fake.lookupCalls, "navigation params must bypass the network")
	view := m.view()
	assert.Contains(t, view, "Book Title")
	assert.Contains(t, view, "Author Name")
}

func TestDetail_FromIDFetchesAndRenders(t *testing.T) {
	fake := &fakeFinder{lookupVolume: &googlebooks.Volume{
		ID: "123",
		VolumeInfo: googlebooks.VolumeInfo{
			Title:   "Book Title",
			Authors: []string{"Author Name"},
		},
	}}

	m := newDetailFromID(context.Background(), fake, zerolog.Nop(), DefaultKeyMap(), 1, "123")
	m.setSize(80, 24)

	msgs := runCmd(m.init())
	result := findLookupResult(t, msgs)
	require.Empty(t, result.errMsg)
	m.update(result)

	assert.Equal(t, []string{"123"}, fake.lookupCalls)
	assert.False(t, m.loading)
	assert.Contains(t, m.view(), "Book Title")
}

func TestDetail_LookupFailureClassifiedForLookup(t *testing.T) {
	fake := &fakeFinder{lookupErr: &googlebooks.StatusError{Code: 404}}

	m := newDetailFromID(context.Background(), fake, zerolog.Nop(), DefaultKeyMap(), 1, "bad-id")
	m.setSize(80, 24)

	msgs := runCmd(m.init())
	m.update(findLookupResult(t, msgs))

	assert.Nil(t, m.volume)
	assert.Equal(t, "Book could not be loaded. Please try again.", m.errMsg)
	assert.Contains(t, m.view(), "Book could not be loaded")
}

func TestDetail_EmptySuccessSynthesizesNotFound(t *testing.T) {
	// The client reported success but the record carries nothing; the
	// screen, not the client, owns the not-found message.
	fake := &fakeFinder{lookupVolume: &googlebooks.Volume{}}

	m := newDetailFromID(context.Background(), fake, zerolog.Nop(), DefaultKeyMap(), 1, "ghost")
	m.setSize(80, 24)

	msgs := runCmd(m.init())
	m.update(findLookupResult(t, msgs))

	assert.True(t, m.notFound)
	assert.Empty(t, m.errMsg)
	assert.Contains(t, m.view(), "Book not found.")
}

func TestHome_ErrorThenRetry(t *testing.T) {
	fake := &fakeFinder{popularErr: &googlebooks.StatusError{Code: 500}}
	m := newHomeModel(context.Background(), fake, zerolog.Nop(), DefaultKeyMap())
	m.setSize(80, 24)

	msgs := runCmd(m.load())
	var result popularResultMsg
	for _, msg := range msgs {
		if r, ok := msg.(popularResultMsg); ok {
			result = r
		}
	}
	require.NotEmpty(t, result.errMsg)
	m.update(result)
	assert.Equal(t, "Something went wrong on our end. Please try again later.", m.errMsg)

	fake.mu.Lock()
	fake.popularErr = nil
	fake.popularVolumes = []googlebooks.Volume{
		{ID: "1", VolumeInfo: googlebooks.VolumeInfo{Title: "Hyperion"}},
	}
	fake.mu.Unlock()

	retryMsgs := runCmd(m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}))
	for _, msg := range retryMsgs {
		if r, ok := msg.(popularResultMsg); ok {
			m.update(r)
		}
	}

	assert.Empty(t, m.errMsg)
	require.Len(t, m.list.Items(), 1)
	assert.True(t, strings.Contains(m.view(), "Hyperion"))
}

func TestHome_RetryIgnoredWhileLoading(t *testing.T) {
	fake := &fakeFinder{popularVolumes: []googlebooks.Volume{
		{ID: "1", VolumeInfo: googlebooks.VolumeInfo{Title: "Hyperion"}},
	}}
	m := newHomeModel(context.Background(), fake, zerolog.Nop(), DefaultKeyMap())
	m.setSize(80, 24)

	runCmd(m.load())
	require.True(t, m.loading)

	// The first call has not resolved yet: mashing retry must not stack a
	// second one.
	for _, msg := range runCmd(m.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})) {
		_, isResult := msg.(popularResultMsg)
		assert.False(t, isResult, "retry while loading must not issue a call")
	}

	fake.mu.Lock()
	calls := fake.popularCalls
	fake.mu.Unlock()
	assert.Equal(t, 1, calls)
}
