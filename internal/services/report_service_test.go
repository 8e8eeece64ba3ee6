package services

import (
	"context"
	"testing"

	"biobank-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustodyReportPDF(t *testing.T) {
	store := newMemStore()
	lifecycle := NewLifecycleService(store)
	reports := NewReportService(store, store)
	seedSample(t, store, "s-0001", models.StatePending, models.ClassUltraCold)
	seedZone(t, store, "Z1", models.ClassUltraCold, 5)

	ctx := context.Background()
	_, err := lifecycle.AdvanceState(ctx, "s-0001", models.StateValidated, "tech@lab.example")
	require.NoError(t, err)
	_, err = lifecycle.AssignToZone(ctx, "s-0001", "Z1", "tech@lab.example")
	require.NoError(t, err)

	pdf, err := reports.CustodyReportPDF(ctx, "s-0001")
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestCustodyReportPDFNoEvents(t *testing.T) {
	store := newMemStore()
	reports := NewReportService(store, store)
	seedSample(t, store, "s-0001", models.StatePending, models.ClassUltraCold)

	pdf, err := reports.CustodyReportPDF(context.Background(), "s-0001")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestCustodyReportPDFUnknownSample(t *testing.T) {
	store := newMemStore()
	reports := NewReportService(store, store)

	_, err := reports.CustodyReportPDF(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
