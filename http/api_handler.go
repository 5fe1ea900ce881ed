package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"market-finder/domain"
	"market-finder/logging"
	"market-finder/service"
)

// APIHandler exposes the selection flow as JSON for script front-ends and
// the map collaborator.
type APIHandler struct {
	selection *service.SelectionService
	lookup    *service.LookupService
	logger    zerolog.Logger
}

// NewAPIHandler creates an APIHandler.
func NewAPIHandler(
	selection *service.SelectionService,
	lookup *service.LookupService,
	logger zerolog.Logger,
) *APIHandler {
	return &APIHandler{
		selection: selection,
		lookup:    lookup,
		logger:    logging.Component(logger, "api"),
	}
}

type lobsResponse struct {
	Type domain.BusinessType `json:"type"`
	LOBs []string            `json:"lobs"`
}

type lookupResponse struct {
	Selection domain.Selection      `json:"selection"`
	Stage     domain.Stage          `json:"stage"`
	URL       string                `json:"url"`
	Results   domain.CarrierResults `json:"results"`
	Total     int                   `json:"total"`
}

type selectionRequest struct {
	Selection domain.Selection `json:"selection"`
	Command   string           `json:"command"`
	Value     string           `json:"value"`
}

type selectionResponse struct {
	Selection domain.Selection `json:"selection"`
	Stage     domain.Stage     `json:"stage"`
	URL       string           `json:"url"`
	Applied   bool             `json:"applied"`
}

// States lists every state with its licensed flag.
func (h *APIHandler) States(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, h.selection.Reference().ListStates())
}

// LOBs lists the catalog of the type parameter, empty for unknown types.
func (h *APIHandler) LOBs(w http.ResponseWriter, r *http.Request) {
	bt := domain.BusinessType(r.URL.Query().Get(service.ParamType))
	writeJSON(w, h.logger, http.StatusOK, lobsResponse{
		Type: bt,
		LOBs: h.selection.Reference().LOBsFor(bt),
	})
}

// Lookup parses the query like a page load and returns the matching carriers.
func (h *APIHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	sess := service.NewSession(h.selection, nil, r.URL.Query())
	sel := sess.Selection()
	res := h.lookup.Lookup(r.Context(), sel)

	writeJSON(w, h.logger, http.StatusOK, lookupResponse{
		Selection: sel,
		Stage:     sess.Stage(),
		URL:       sess.URL(),
		Results:   res,
		Total:     res.Total(),
	})
}

// Map returns the region description for the map collaborator.
func (h *APIHandler) Map(w http.ResponseWriter, r *http.Request) {
	sess := service.NewSession(h.selection, nil, r.URL.Query())
	states := h.selection.Reference().ListStates()
	writeJSON(w, h.logger, http.StatusOK, service.RegionStates(states, sess.Selection().StateCode))
}

// Select applies one command to the Selection carried in the body. The body
// Selection is treated like a URL at load time, so invalid fields in it are
// dropped before the command runs.
func (h *APIHandler) Select(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var input selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.logger.Debug().Err(err).Msg("decode selection request")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess := service.NewSession(h.selection, nil, service.SelectionQuery(input.Selection))

	var applied bool
	switch input.Command {
	case service.FieldState:
		applied = sess.SelectState(input.Value)
	case service.FieldBusinessType:
		applied = sess.SelectBusinessType(domain.BusinessType(input.Value))
	case service.FieldLOB:
		applied = sess.SelectLOB(input.Value)
	case service.FieldReset:
		sess.Reset()
		applied = true
	default:
		http.Error(w, "unknown command", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, selectionResponse{
		Selection: sess.Selection(),
		Stage:     sess.Stage(),
		URL:       sess.URL(),
		Applied:   applied,
	})
}
