package tui

import (
	"context"
	"net/url"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-finder/data"
	"market-finder/domain"
	"market-finder/repository"
	"market-finder/service"
)

func newApp(t *testing.T, query url.Values) *App {
	t.Helper()
	ds, err := repository.LoadDataset(data.Reference())
	require.NoError(t, err)
	ref, err := repository.NewReferenceRepositoryMemory(ds)
	require.NoError(t, err)

	selection := service.NewSelectionService(ref, zerolog.Nop(), nil)
	lookup := service.NewLookupService(ref, nil, "test", zerolog.Nop(), nil)
	return New(context.Background(), selection, service.NewViewBuilder(selection, lookup), query)
}

func press(a *App, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = a.Update(msg)
	}
	return cmd
}

func TestBrowseToResults(t *testing.T) {
	a := newApp(t, nil)
	assert.Equal(t, "/", a.URL())
	assert.Contains(t, a.View(), "Select a state")

	// first licensed state in dataset order is Arizona
	press(a, "enter")
	assert.Equal(t, "/?state=AZ", a.URL())
	assert.Contains(t, a.View(), "Select Business Type")

	press(a, "enter")
	assert.Equal(t, "/?state=AZ&type=Personal", a.URL())
	assert.Contains(t, a.View(), "Choose insurance product")

	press(a, "enter")
	assert.Equal(t, "/?state=AZ&type=Personal&lob=Personal+Auto", a.URL())

	view := a.View()
	assert.Contains(t, view, "Online Applications")
	assert.Contains(t, view, "123 Insurance")
	assert.Contains(t, view, "Contact Required")
	assert.Contains(t, view, "Gainsco")
	assert.Contains(t, view, "URL: /?state=AZ&type=Personal&lob=Personal+Auto")
}

func TestCursorSkipsUnlicensedStates(t *testing.T) {
	a := newApp(t, nil)

	press(a, "down", "enter")
	assert.Equal(t, "CA", a.Selection().StateCode)

	press(a, "s", "down", "down", "enter")
	assert.Equal(t, "TX", a.Selection().StateCode)

	// nothing licensed after Texas
	press(a, "s", "j", "j", "j", "enter")
	assert.Equal(t, "TX", a.Selection().StateCode)

	press(a, "s", "k", "k", "k", "k", "enter")
	assert.Equal(t, "AZ", a.Selection().StateCode)
}

func TestRepickCascades(t *testing.T) {
	q := url.Values{"state": {"TX"}, "type": {"Commercial"}, "lob": {"Commercial Auto"}}
	a := newApp(t, q)
	require.Equal(t, domain.StageResults, domain.StageOf(a.Selection()))

	press(a, "b", "up", "enter")
	assert.Equal(t, domain.Selection{StateCode: "TX", BusinessType: domain.BusinessPersonal}, a.Selection())
	assert.Equal(t, "/?state=TX&type=Personal", a.URL())

	press(a, "down", "enter")
	assert.Equal(t, "Homeowners", a.Selection().LOB)

	press(a, "l", "down", "enter")
	assert.Equal(t, "Renters", a.Selection().LOB)

	press(a, "s", "up", "enter")
	assert.Equal(t, domain.Selection{StateCode: "CA"}, a.Selection())
}

func TestEscClosesPicker(t *testing.T) {
	q := url.Values{"state": {"CA"}, "type": {"Personal"}, "lob": {"Umbrella"}}
	a := newApp(t, q)

	press(a, "s")
	assert.Contains(t, a.View(), "Select a state")
	press(a, "esc")
	assert.Contains(t, a.View(), "Available Carriers")
	assert.Equal(t, "Umbrella", a.Selection().LOB)
}

func TestNoCarriersAvailable(t *testing.T) {
	q := url.Values{"state": {"AZ"}, "type": {"Commercial"}, "lob": {"Lunar Cargo"}}
	a := newApp(t, q)

	view := a.View()
	assert.Contains(t, view, "Found 0 carriers for Lunar Cargo")
	assert.Contains(t, view, "No carriers available")
	assert.NotContains(t, view, "Online Applications")
}

func TestKeysIgnoredWithoutPrerequisites(t *testing.T) {
	a := newApp(t, nil)

	press(a, "b")
	assert.Contains(t, a.View(), "Select a state")
	press(a, "l")
	assert.Contains(t, a.View(), "Select a state")
	assert.Equal(t, "/", a.URL())
}

func TestResetAndQuit(t *testing.T) {
	a := newApp(t, url.Values{"state": {"CA"}, "type": {"Personal"}})

	press(a, "r")
	assert.True(t, a.Selection().IsZero())
	assert.Equal(t, "/", a.URL())

	cmd := press(a, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
