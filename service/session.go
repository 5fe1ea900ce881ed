package service

import (
	"net/url"

	"market-finder/domain"
)

// Session owns one live Selection: a browser page, an API call or a terminal
// run. The URL is the source of truth; the Selection held here is derived
// from it once at creation and then kept in step by the commands.
//
// A Session is not safe for concurrent use.
type Session struct {
	svc       *SelectionService
	nav       Navigator
	sel       domain.Selection
	observers []func(domain.Selection)
}

// NewSession performs the one-shot load-time parse of query. A nil
// navigator discards URL updates.
func NewSession(svc *SelectionService, nav Navigator, query url.Values) *Session {
	return &Session{
		svc: svc,
		nav: nav,
		sel: ParseSelection(svc, query),
	}
}

// Selection returns the current Selection.
func (s *Session) Selection() domain.Selection {
	return s.sel
}

// URL is the shareable URL of the current Selection.
func (s *Session) URL() string {
	return SelectionURL(s.sel)
}

// Stage is the presentation stage of the current Selection.
func (s *Session) Stage() domain.Stage {
	return domain.StageOf(s.sel)
}

// Subscribe registers fn to be called with the new Selection after every
// applied command. Observers must not issue commands themselves.
func (s *Session) Subscribe(fn func(domain.Selection)) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// SelectState applies SelectionService.SelectState and reports whether it took effect.
func (s *Session) SelectState(code string) bool {
	return s.apply(s.svc.SelectState(s.sel, code))
}

// SelectBusinessType applies SelectionService.SelectBusinessType.
func (s *Session) SelectBusinessType(bt domain.BusinessType) bool {
	return s.apply(s.svc.SelectBusinessType(s.sel, bt))
}

// SelectLOB applies SelectionService.SelectLOB.
func (s *Session) SelectLOB(name string) bool {
	return s.apply(s.svc.SelectLOB(s.sel, name))
}

// Reset clears the Selection and navigates to "/".
func (s *Session) Reset() {
	s.apply(s.svc.Reset(), true)
}

func (s *Session) apply(next domain.Selection, applied bool) bool {
	if !applied {
		return false
	}
	s.sel = next
	if s.nav != nil {
		s.nav.Navigate(SelectionURL(next))
	}
	for _, fn := range s.observers {
		fn(next)
	}
	return true
}
