// Package tui is the terminal front-end. Every key press becomes one
// Selection command on a Session; the screen is re-derived from the
// resulting View.
package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"market-finder/domain"
	"market-finder/service"
)

type picker string

const (
	pickNone  picker = ""
	pickState picker = "state"
	pickType  picker = "type"
	pickLOB   picker = "lob"
)

type choice struct {
	value   string
	label   string
	detail  string
	enabled bool
	active  bool
}

// App is the bubbletea model for the browse command.
type App struct {
	ctx     context.Context
	session *service.Session
	views   *service.ViewBuilder
	view    service.View

	url    string
	picker picker
	cursor int
}

// New loads a Session from query and returns the model driving it.
func New(
	ctx context.Context,
	selection *service.SelectionService,
	views *service.ViewBuilder,
	query url.Values,
) *App {
	a := &App{ctx: ctx, views: views}
	a.session = service.NewSession(selection, service.NavigatorFunc(func(u string) {
		a.url = u
	}), query)
	a.session.Subscribe(func(sel domain.Selection) {
		a.view = a.views.Build(a.ctx, sel)
	})
	a.url = a.session.URL()
	a.view = views.Build(ctx, a.session.Selection())
	a.resetCursor()
	return a
}

// URL is the shareable address of the current Selection.
func (a *App) URL() string { return a.url }

// Selection returns the current Selection.
func (a *App) Selection() domain.Selection { return a.session.Selection() }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, ok := msg.(tea.KeyMsg)
	if !ok {
		return a, nil
	}

	switch m.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		a.move(-1)
	case "down", "j":
		a.move(1)
	case "enter":
		a.choose()
	case "esc":
		a.open(pickNone)
	case "s":
		a.open(pickState)
	case "b":
		if a.view.Selection.StateCode != "" {
			a.open(pickType)
		}
	case "l":
		if a.view.Selection.BusinessType != "" {
			a.open(pickLOB)
		}
	case "r":
		a.session.Reset()
		a.open(pickNone)
	}
	return a, nil
}

// active is the explicit picker, or the one the current stage asks for.
func (a *App) active() picker {
	if a.picker != pickNone {
		return a.picker
	}
	switch a.view.Stage {
	case domain.StageMap:
		return pickState
	case domain.StageRefine:
		if a.view.Selection.BusinessType == "" {
			return pickType
		}
		return pickLOB
	default:
		return pickNone
	}
}

func (a *App) choices() []choice {
	switch a.active() {
	case pickState:
		out := make([]choice, 0, len(a.view.Regions))
		for _, r := range a.view.Regions {
			out = append(out, choice{
				value:   r.Code,
				label:   fmt.Sprintf("%s  %s", r.Code, r.Name),
				enabled: r.Selectable,
				active:  r.Visual == domain.RegionSelected,
			})
		}
		return out
	case pickType:
		return fromOptions(a.view.BusinessTypes)
	case pickLOB:
		return fromOptions(a.view.Products)
	default:
		return nil
	}
}

func fromOptions(opts []service.Option) []choice {
	out := make([]choice, 0, len(opts))
	for _, o := range opts {
		out = append(out, choice{
			value:   o.Value,
			label:   o.Label,
			detail:  o.Description,
			enabled: true,
			active:  o.Active,
		})
	}
	return out
}

func (a *App) open(p picker) {
	a.picker = p
	a.resetCursor()
}

func (a *App) resetCursor() {
	a.cursor = 0
	cs := a.choices()
	for i, c := range cs {
		if c.active {
			a.cursor = i
			return
		}
	}
	for i, c := range cs {
		if c.enabled {
			a.cursor = i
			return
		}
	}
}

// move steps the cursor over enabled choices only.
func (a *App) move(delta int) {
	cs := a.choices()
	for i := a.cursor + delta; i >= 0 && i < len(cs); i += delta {
		if cs[i].enabled {
			a.cursor = i
			return
		}
	}
}

func (a *App) choose() {
	cs := a.choices()
	if a.cursor < 0 || a.cursor >= len(cs) || !cs[a.cursor].enabled {
		return
	}
	value := cs[a.cursor].value

	var applied bool
	switch a.active() {
	case pickState:
		applied = a.session.SelectState(value)
	case pickType:
		applied = a.session.SelectBusinessType(domain.BusinessType(value))
	case pickLOB:
		applied = a.session.SelectLOB(value)
	}
	if applied {
		a.open(pickNone)
	}
}

func (a *App) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Market Finder"))
	b.WriteString("\n")
	if a.view.StateName != "" {
		b.WriteString("Selected: " + a.view.StateName)
		if bt := a.view.Selection.BusinessType; bt != "" {
			b.WriteString(" · " + string(bt))
		}
		if lob := a.view.Selection.LOB; lob != "" {
			b.WriteString(" · " + lob)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch a.active() {
	case pickState:
		b.WriteString(headerStyle.Render("Select a state") + "\n")
		b.WriteString(a.renderChoices())
	case pickType:
		b.WriteString(headerStyle.Render("Select Business Type") + "\n")
		b.WriteString(a.renderChoices())
	case pickLOB:
		b.WriteString(headerStyle.Render("Choose insurance product") + "\n")
		b.WriteString(a.renderChoices())
	default:
		b.WriteString(a.renderResults())
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render("URL: " + a.url))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[↑/↓] Move  [enter] Select  [s] State  [b] Type  [l] Product  [r] Reset  [q] Quit"))
	return b.String()
}
