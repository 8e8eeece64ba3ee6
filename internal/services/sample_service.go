package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"biobank-backend/internal/barcode"
	"biobank-backend/internal/models"

	"github.com/google/uuid"
)

// barcodeRetries bounds regeneration attempts after a collision. The random
// suffix makes more than one collision in a row effectively impossible.
const barcodeRetries = 3

type SampleService struct {
	Samples SampleStore
	Ledger  LedgerStore
}

func NewSampleService(samples SampleStore, ledger LedgerStore) *SampleService {
	return &SampleService{Samples: samples, Ledger: ledger}
}

// CreateSample registers a new specimen in PENDING state with a freshly
// generated barcode. On the unlikely barcode collision the insert is retried
// with a regenerated code.
func (s *SampleService) CreateSample(ctx context.Context, req *models.CreateSampleRequest) (*models.Sample, error) {
	typeCode := strings.ToUpper(strings.TrimSpace(req.TypeCode))
	if !barcode.ValidTypeCode(typeCode) {
		return nil, fmt.Errorf("type code %q: %w", req.TypeCode, models.ErrValidation)
	}
	if !models.ValidTemperatureClass(req.StorageClass) {
		return nil, fmt.Errorf("storage class %q: %w", req.StorageClass, models.ErrValidation)
	}

	var lastErr error
	for attempt := 0; attempt < barcodeRetries; attempt++ {
		code, err := barcode.Generate(typeCode)
		if err != nil {
			return nil, err
		}

		sample := &models.Sample{
			ID:           uuid.NewString(),
			Barcode:      code,
			TypeCode:     typeCode,
			StorageClass: req.StorageClass,
			State:        models.StatePending,
		}

		err = s.Samples.CreateSample(ctx, sample)
		if err == nil {
			return sample, nil
		}
		if !errors.Is(err, models.ErrDuplicateBarcode) {
			return nil, err
		}
		log.Printf("[SampleService] barcode collision on %s, regenerating", code)
		lastErr = err
	}
	return nil, lastErr
}

func (s *SampleService) GetSample(ctx context.Context, id string) (*models.Sample, error) {
	return s.Samples.GetSample(ctx, id)
}

// ScanBarcode resolves a scanned label to (sample, zone, state) in one read.
// Malformed codes are reported as not found, the scanner gun cannot tell
// the difference anyway.
func (s *SampleService) ScanBarcode(ctx context.Context, code string) (*models.ScanResult, error) {
	if !barcode.Valid(code) {
		return nil, fmt.Errorf("barcode %q: %w", code, models.ErrNotFound)
	}
	return s.Samples.Scan(ctx, code)
}

// History returns the sample's chain of custody in sequence order.
func (s *SampleService) History(ctx context.Context, sampleID string) ([]*models.CustodyEvent, error) {
	if _, err := s.Samples.GetSample(ctx, sampleID); err != nil {
		return nil, err
	}
	return s.Ledger.History(ctx, sampleID)
}

// StateCounts aggregates samples per lifecycle state for the dashboard.
func (s *SampleService) StateCounts(ctx context.Context) (map[string]int, error) {
	return s.Samples.StateCounts(ctx)
}
