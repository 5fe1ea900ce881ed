package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"market-finder/domain"
	"market-finder/logging"
	"market-finder/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageHandler serves the server-rendered front-end. Every request is a fresh
// page load: the query string is parsed once into a Session, and command
// routes answer with 303 See Other to the rebuilt URL.
type PageHandler struct {
	selection *service.SelectionService
	views     *service.ViewBuilder
	tmpl      *template.Template
	logger    zerolog.Logger
}

// NewPageHandler parses the embedded templates.
func NewPageHandler(
	selection *service.SelectionService,
	views *service.ViewBuilder,
	logger zerolog.Logger,
) (*PageHandler, error) {
	tmpl, err := template.New("index.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		selection: selection,
		views:     views,
		tmpl:      tmpl,
		logger:    logging.Component(logger, "pages"),
	}, nil
}

type carrierCard struct {
	View    service.View
	Carrier domain.Carrier
}

var templateFuncs = template.FuncMap{
	"card": func(v service.View, c domain.Carrier) carrierCard {
		return carrierCard{View: v, Carrier: c}
	},
	"stateURL": func(sel domain.Selection, code string) string {
		return service.WithQuery("/select/state/"+url.PathEscape(code), sel)
	},
	"typeURL": func(sel domain.Selection, bt string) string {
		return service.WithQuery("/select/type/"+url.PathEscape(bt), sel)
	},
	"lobURL": func(sel domain.Selection, name string) string {
		q := service.SelectionQuery(sel)
		q.Set("name", name)
		return "/select/lob?" + q.Encode()
	},
}

// Index renders the page for the Selection carried in the query.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	sess := service.NewSession(h.selection, nil, r.URL.Query())
	view := h.views.Build(r.Context(), sess.Selection())

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, view); err != nil {
		h.logger.Error().Err(err).Msg("render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn().Err(err).Msg("write page")
	}
}

// SelectState handles a click on a map region.
func (h *PageHandler) SelectState(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	h.command(w, r, func(s *service.Session) { s.SelectState(code) })
}

// SelectBusinessType handles a business type button.
func (h *PageHandler) SelectBusinessType(w http.ResponseWriter, r *http.Request) {
	bt := domain.BusinessType(chi.URLParam(r, "type"))
	h.command(w, r, func(s *service.Session) { s.SelectBusinessType(bt) })
}

// SelectLOB handles a product link; the product arrives in the name parameter.
func (h *PageHandler) SelectLOB(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	h.command(w, r, func(s *service.Session) { s.SelectLOB(name) })
}

// Reset clears the Selection.
func (h *PageHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, func(s *service.Session) { s.Reset() })
}

// command loads the Session from the carried query, applies one command
// and redirects to wherever the Session navigated. A rejected command lands
// on the canonical URL of the loaded Selection.
func (h *PageHandler) command(w http.ResponseWriter, r *http.Request, apply func(*service.Session)) {
	nav := &service.RecordingNavigator{}
	sess := service.NewSession(h.selection, nav, r.URL.Query())
	nav.URL = sess.URL()

	apply(sess)

	http.Redirect(w, r, nav.URL, http.StatusSeeOther)
}
