package service

import (
	"net/url"
	"strings"

	"market-finder/domain"
)

// ParseSelection is the load-time half of URL synchronization. Fields are
// applied in the order state, type, lob so each step sees the previous one.
// Invalid state and type values are dropped; lob is taken verbatim and is
// only checked when carriers are filtered.
func ParseSelection(svc *SelectionService, query url.Values) domain.Selection {
	var sel domain.Selection
	if code := query.Get(ParamState); code != "" {
		sel, _ = svc.SelectState(sel, code)
	}
	if bt := query.Get(ParamType); bt != "" {
		sel, _ = svc.SelectBusinessType(sel, domain.BusinessType(bt))
	}
	if lob := query.Get(ParamLOB); lob != "" {
		sel.LOB = lob
	}
	return sel
}

// SelectionQuery maps the non-empty fields of sel to query parameters.
func SelectionQuery(sel domain.Selection) url.Values {
	q := url.Values{}
	if sel.StateCode != "" {
		q.Set(ParamState, sel.StateCode)
	}
	if sel.BusinessType != "" {
		q.Set(ParamType, string(sel.BusinessType))
	}
	if sel.LOB != "" {
		q.Set(ParamLOB, sel.LOB)
	}
	return q
}

// SelectionURL is the change-time half: the URL is rebuilt from scratch
// with keys in state, type, lob order, or "/" when nothing is selected.
func SelectionURL(sel domain.Selection) string {
	return WithQuery(RootPath, sel)
}

// WithQuery appends the encoded Selection to path.
func WithQuery(path string, sel domain.Selection) string {
	raw := encodeSelection(sel)
	if raw == "" {
		return path
	}
	return path + "?" + raw
}

func encodeSelection(sel domain.Selection) string {
	parts := make([]string, 0, 3)
	if sel.StateCode != "" {
		parts = append(parts, ParamState+"="+url.QueryEscape(sel.StateCode))
	}
	if sel.BusinessType != "" {
		parts = append(parts, ParamType+"="+url.QueryEscape(string(sel.BusinessType)))
	}
	if sel.LOB != "" {
		parts = append(parts, ParamLOB+"="+url.QueryEscape(sel.LOB))
	}
	return strings.Join(parts, "&")
}

// Navigator receives the rebuilt URL after every applied command. It stands
// for a history update, not a new document load.
type Navigator interface {
	Navigate(url string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(url string)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(url string) {
	if f != nil {
		f(url)
	}
}

// RecordingNavigator remembers the last URL it was sent to.
type RecordingNavigator struct {
	URL string
}

// Navigate implements Navigator.
func (n *RecordingNavigator) Navigate(url string) {
	n.URL = url
}
