package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"biobank-backend/internal/cache"
	"biobank-backend/internal/metrics"
	"biobank-backend/internal/models"
)

type ZoneService struct {
	Zones ZoneStore
}

func NewZoneService(zones ZoneStore) *ZoneService {
	return &ZoneService{Zones: zones}
}

// ProvisionZone registers a new physical storage location. Temperature class
// is fixed for the life of the zone.
func (s *ZoneService) ProvisionZone(ctx context.Context, req *models.CreateZoneRequest) (*models.StorageZone, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return nil, fmt.Errorf("zone id is required: %w", models.ErrValidation)
	}
	if !models.ValidTemperatureClass(req.TemperatureClass) {
		return nil, fmt.Errorf("temperature class %q: %w", req.TemperatureClass, models.ErrValidation)
	}
	if req.Capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1: %w", models.ErrInvalidCapacity)
	}

	zone := &models.StorageZone{
		ID:               id,
		TemperatureClass: req.TemperatureClass,
		Capacity:         req.Capacity,
	}
	if err := s.Zones.CreateZone(ctx, zone); err != nil {
		return nil, err
	}

	cache.InvalidateCapacityOverview(ctx)
	log.Printf("[ZoneService] provisioned zone %s (%s, capacity %d)",
		zone.ID, zone.TemperatureClass, zone.Capacity)
	return zone, nil
}

// AmendCapacity changes a zone's capacity; shrinking below current occupancy
// is rejected by the store.
func (s *ZoneService) AmendCapacity(ctx context.Context, zoneID string, capacity int) (*models.StorageZone, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("capacity must be at least 1: %w", models.ErrInvalidCapacity)
	}

	zone, err := s.Zones.AmendCapacity(ctx, zoneID, capacity)
	if err != nil {
		return nil, err
	}

	cache.InvalidateCapacityOverview(ctx)
	return zone, nil
}

// CapacityOverview serves the dashboard snapshot, cached briefly in redis.
// The cache is invalidated on every successful zone mutation, so a stale
// read window only exists while redis itself is unreachable.
func (s *ZoneService) CapacityOverview(ctx context.Context) ([]*models.ZoneSummary, error) {
	if data, ok := cache.GetCachedCapacityOverview(ctx); ok {
		var zones []*models.ZoneSummary
		if err := json.Unmarshal(data, &zones); err == nil {
			return zones, nil
		}
	}

	zones, err := s.Zones.CapacityOverview(ctx)
	if err != nil {
		return nil, err
	}

	for _, z := range zones {
		metrics.ZoneOccupancy.WithLabelValues(z.ZoneID).Set(float64(z.OccupiedCount))
	}

	if data, err := json.Marshal(zones); err == nil {
		cache.CacheCapacityOverview(ctx, data)
	}
	return zones, nil
}
