package service_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"market-finder/data"
	"market-finder/metrics"
	"market-finder/repository"
	"market-finder/service"
)

func newReference(t *testing.T) *repository.ReferenceRepositoryMemory {
	t.Helper()
	ds, err := repository.LoadDataset(data.Reference())
	require.NoError(t, err)
	ref, err := repository.NewReferenceRepositoryMemory(ds)
	require.NoError(t, err)
	return ref
}

func newSelectionService(t *testing.T) (*service.SelectionService, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	return service.NewSelectionService(newReference(t), zerolog.Nop(), m), m
}
