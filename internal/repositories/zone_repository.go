package repositories

import (
	"context"
	"errors"
	"fmt"

	"biobank-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ZoneRepository struct {
	DB *pgxpool.Pool
}

func NewZoneRepository(db *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{DB: db}
}

func (r *ZoneRepository) CreateZone(ctx context.Context, z *models.StorageZone) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO storage_zones(id, temperature_class, capacity)
         VALUES($1, $2, $3)
         RETURNING occupied_count, created_at, updated_at`,
		z.ID, z.TemperatureClass, z.Capacity,
	).Scan(&z.OccupiedCount, &z.CreatedAt, &z.UpdatedAt)
	if uniqueViolation(err) {
		return fmt.Errorf("zone %s: %w", z.ID, models.ErrZoneExists)
	}
	return err
}

func (r *ZoneRepository) GetZone(ctx context.Context, id string) (*models.StorageZone, error) {
	var z models.StorageZone
	err := r.DB.QueryRow(ctx,
		`SELECT id, temperature_class, capacity, occupied_count, created_at, updated_at
         FROM storage_zones WHERE id=$1`, id,
	).Scan(&z.ID, &z.TemperatureClass, &z.Capacity, &z.OccupiedCount, &z.CreatedAt, &z.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("zone %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

// AmendCapacity changes a zone's capacity. The conditional update makes the
// occupancy check and the write one atomic step, so a concurrent reservation
// cannot slip a sample in under a shrinking capacity.
func (r *ZoneRepository) AmendCapacity(ctx context.Context, id string, capacity int) (*models.StorageZone, error) {
	var z models.StorageZone
	err := r.DB.QueryRow(ctx,
		`UPDATE storage_zones
         SET capacity=$2, updated_at=NOW()
         WHERE id=$1 AND occupied_count <= $2
         RETURNING id, temperature_class, capacity, occupied_count, created_at, updated_at`,
		id, capacity,
	).Scan(&z.ID, &z.TemperatureClass, &z.Capacity, &z.OccupiedCount, &z.CreatedAt, &z.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the zone is missing or the new capacity is below occupancy.
		if _, getErr := r.GetZone(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("zone %s: capacity %d below occupancy: %w",
			id, capacity, models.ErrInvalidCapacity)
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

func (r *ZoneRepository) CapacityOverview(ctx context.Context) ([]*models.ZoneSummary, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, temperature_class, capacity, occupied_count
         FROM storage_zones ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []*models.ZoneSummary
	for rows.Next() {
		var z models.ZoneSummary
		if err := rows.Scan(&z.ZoneID, &z.TemperatureClass, &z.Capacity, &z.OccupiedCount); err != nil {
			return nil, err
		}
		zones = append(zones, &z)
	}
	return zones, rows.Err()
}
