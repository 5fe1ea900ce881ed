package service

import (
	"github.com/rs/zerolog"

	"market-finder/domain"
	"market-finder/logging"
	"market-finder/metrics"
	"market-finder/repository"
)

// SelectionService implements the only legal ways to change a Selection.
// Every command is total: invalid input returns the Selection unchanged
// together with applied=false.
type SelectionService struct {
	ref     repository.ReferenceRepository
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewSelectionService creates a SelectionService validating against ref.
func NewSelectionService(
	ref repository.ReferenceRepository,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *SelectionService {
	return &SelectionService{
		ref:     ref,
		logger:  logging.Component(logger, "selection"),
		metrics: m,
	}
}

// SelectState picks a licensed state and clears the business type and line
// of business. Unknown and unlicensed codes are ignored.
func (s *SelectionService) SelectState(
	sel domain.Selection,
	code string,
) (domain.Selection, bool) {
	state, ok := s.ref.FindState(code)
	if !ok || !state.Licensed {
		return s.reject(sel, FieldState, code)
	}
	s.metrics.ObserveSelection(FieldState, true)
	return domain.Selection{StateCode: state.Code}, true
}

// SelectBusinessType sets the business type and always clears the line of
// business, even when bt equals the current type.
func (s *SelectionService) SelectBusinessType(
	sel domain.Selection,
	bt domain.BusinessType,
) (domain.Selection, bool) {
	parsed, ok := domain.ParseBusinessType(string(bt))
	if !ok {
		return s.reject(sel, FieldBusinessType, string(bt))
	}
	s.metrics.ObserveSelection(FieldBusinessType, true)
	sel.BusinessType = parsed
	sel.LOB = ""
	return sel, true
}

// SelectLOB sets the line of business. The business type must already be
// chosen and name must belong to its catalog.
func (s *SelectionService) SelectLOB(
	sel domain.Selection,
	name string,
) (domain.Selection, bool) {
	if sel.BusinessType == "" || !s.HasLOB(sel.BusinessType, name) {
		return s.reject(sel, FieldLOB, name)
	}
	s.metrics.ObserveSelection(FieldLOB, true)
	sel.LOB = name
	return sel, true
}

// Reset clears every field.
func (s *SelectionService) Reset() domain.Selection {
	s.metrics.ObserveSelection(FieldReset, true)
	return domain.Selection{}
}

// HasLOB reports whether name is in the catalog of bt.
func (s *SelectionService) HasLOB(bt domain.BusinessType, name string) bool {
	for _, lob := range s.ref.LOBsFor(bt) {
		if lob == name {
			return true
		}
	}
	return false
}

// Reference exposes the repository the service validates against.
func (s *SelectionService) Reference() repository.ReferenceRepository {
	return s.ref
}

func (s *SelectionService) reject(
	sel domain.Selection,
	field string,
	value string,
) (domain.Selection, bool) {
	s.metrics.ObserveSelection(field, false)
	s.logger.Debug().
		Str("field", field).
		Str("value", value).
		Msg("selection ignored")
	return sel, false
}
