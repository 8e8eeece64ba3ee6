package services

import (
	"context"

	"biobank-backend/internal/models"
)

// Store interfaces decouple the services from the pgx repositories that
// implement them, so lifecycle semantics can be exercised against an
// in-memory double in tests.

type SampleStore interface {
	CreateSample(ctx context.Context, s *models.Sample) error
	GetSample(ctx context.Context, id string) (*models.Sample, error)
	GetSampleByBarcode(ctx context.Context, barcode string) (*models.Sample, error)
	Scan(ctx context.Context, barcode string) (*models.ScanResult, error)
	StateCounts(ctx context.Context) (map[string]int, error)
}

// LifecycleStore performs the composite transitions. Implementations must
// make each call atomic: either the state change, the occupancy change and
// the custody event all happen, or none do.
type LifecycleStore interface {
	AdvanceState(ctx context.Context, sampleID, target, actor string) (*models.Sample, error)
	AssignToZone(ctx context.Context, sampleID, zoneID, actor string) (*models.Sample, error)
	MoveToZone(ctx context.Context, sampleID, zoneID, actor string) (*models.Sample, error)
	RemoveFromZone(ctx context.Context, sampleID, actor string) (*models.Sample, error)
}

type ZoneStore interface {
	CreateZone(ctx context.Context, z *models.StorageZone) error
	GetZone(ctx context.Context, id string) (*models.StorageZone, error)
	AmendCapacity(ctx context.Context, id string, capacity int) (*models.StorageZone, error)
	CapacityOverview(ctx context.Context) ([]*models.ZoneSummary, error)
}

type LedgerStore interface {
	History(ctx context.Context, sampleID string) ([]*models.CustodyEvent, error)
	ListAfter(ctx context.Context, afterSeq int64, limit int) ([]*models.CustodyEvent, error)
}

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
