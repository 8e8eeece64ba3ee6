package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biobank-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SampleRepository struct {
	DB *pgxpool.Pool
}

func NewSampleRepository(db *pgxpool.Pool) *SampleRepository {
	return &SampleRepository{DB: db}
}

const sampleColumns = `id, barcode, type_code, storage_class, state, current_zone_id, created_at, updated_at`

func scanSample(row pgx.Row) (*models.Sample, error) {
	var s models.Sample
	err := row.Scan(&s.ID, &s.Barcode, &s.TypeCode, &s.StorageClass,
		&s.State, &s.CurrentZoneID, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSample inserts a new sample in PENDING state. The barcode unique
// constraint is the source of truth for collisions; a conflicting insert
// comes back as ErrDuplicateBarcode so the caller can regenerate.
func (r *SampleRepository) CreateSample(ctx context.Context, s *models.Sample) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO samples(id, barcode, type_code, storage_class, state)
         VALUES($1, $2, $3, $4, $5)
         RETURNING created_at, updated_at`,
		s.ID, s.Barcode, s.TypeCode, s.StorageClass, s.State,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if uniqueViolation(err) {
		return fmt.Errorf("barcode %s: %w", s.Barcode, models.ErrDuplicateBarcode)
	}
	return err
}

func (r *SampleRepository) GetSample(ctx context.Context, id string) (*models.Sample, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+sampleColumns+` FROM samples WHERE id=$1`, id)
	s, err := scanSample(row)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("sample %s: %w", id, models.ErrNotFound)
	}
	return s, err
}

func (r *SampleRepository) GetSampleByBarcode(ctx context.Context, barcode string) (*models.Sample, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+sampleColumns+` FROM samples WHERE barcode=$1`, barcode)
	s, err := scanSample(row)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("barcode %s: %w", barcode, models.ErrNotFound)
	}
	return s, err
}

// Scan resolves a barcode to the sample, its zone and state in one read,
// for handheld scanner workflows.
func (r *SampleRepository) Scan(ctx context.Context, barcode string) (*models.ScanResult, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT s.id, s.barcode, s.type_code, s.storage_class, s.state,
		        s.current_zone_id, s.created_at, s.updated_at,
		        z.id, z.temperature_class, z.capacity, z.occupied_count,
		        z.created_at, z.updated_at
		 FROM samples s
		 LEFT JOIN storage_zones z ON s.current_zone_id = z.id
		 WHERE s.barcode = $1`, barcode)

	var s models.Sample
	var zID, zClass *string
	var zCapacity, zOccupied *int
	var zCreated, zUpdated *time.Time
	err := row.Scan(&s.ID, &s.Barcode, &s.TypeCode, &s.StorageClass, &s.State,
		&s.CurrentZoneID, &s.CreatedAt, &s.UpdatedAt,
		&zID, &zClass, &zCapacity, &zOccupied, &zCreated, &zUpdated)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("barcode %s: %w", barcode, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	result := &models.ScanResult{Sample: &s, State: s.State}
	if zID != nil {
		result.Zone = &models.StorageZone{
			ID:               *zID,
			TemperatureClass: *zClass,
			Capacity:         *zCapacity,
			OccupiedCount:    *zOccupied,
			CreatedAt:        *zCreated,
			UpdatedAt:        *zUpdated,
		}
	}
	return result, nil
}

// StateCounts returns the number of samples per lifecycle state, for the
// dashboard aggregation endpoint.
func (r *SampleRepository) StateCounts(ctx context.Context) (map[string]int, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT state, COUNT(*) FROM samples GROUP BY state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var state string
		var n int
		if err := rows.Scan(&state, &n); err != nil {
			return nil, err
		}
		counts[state] = n
	}
	return counts, rows.Err()
}
