package services

import (
	"context"
	"fmt"
	"log"

	"biobank-backend/internal/cache"
	"biobank-backend/internal/metrics"
	"biobank-backend/internal/models"
)

// LifecycleService is the lifecycle controller: it validates requests,
// delegates the atomic transition to the store, and keeps metrics and the
// dashboard cache honest. Transition legality itself is enforced inside the
// store's transaction, under the sample row lock, so two concurrent requests
// for the same sample cannot both pass validation on stale state.
type LifecycleService struct {
	Store LifecycleStore
}

func NewLifecycleService(store LifecycleStore) *LifecycleService {
	return &LifecycleService{Store: store}
}

func validateActor(actor string) error {
	if actor == "" {
		return fmt.Errorf("actor is required: %w", models.ErrValidation)
	}
	return nil
}

func (s *LifecycleService) AdvanceState(ctx context.Context, sampleID, target, actor string) (*models.Sample, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if !models.KnownState(target) {
		return nil, fmt.Errorf("unknown state %q: %w", target, models.ErrValidation)
	}

	sample, err := s.Store.AdvanceState(ctx, sampleID, target, actor)
	s.record("advance", err)
	if err != nil {
		return nil, err
	}
	log.Printf("[Lifecycle] sample %s advanced to %s by %s", sampleID, target, actor)
	return sample, nil
}

func (s *LifecycleService) AssignToZone(ctx context.Context, sampleID, zoneID, actor string) (*models.Sample, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if zoneID == "" {
		return nil, fmt.Errorf("zone id is required: %w", models.ErrValidation)
	}

	sample, err := s.Store.AssignToZone(ctx, sampleID, zoneID, actor)
	s.record("assign", err)
	if err != nil {
		return nil, err
	}
	cache.InvalidateCapacityOverview(ctx)
	log.Printf("[Lifecycle] sample %s assigned to zone %s by %s", sampleID, zoneID, actor)
	return sample, nil
}

func (s *LifecycleService) MoveToZone(ctx context.Context, sampleID, zoneID, actor string) (*models.Sample, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}
	if zoneID == "" {
		return nil, fmt.Errorf("zone id is required: %w", models.ErrValidation)
	}

	sample, err := s.Store.MoveToZone(ctx, sampleID, zoneID, actor)
	s.record("move", err)
	if err != nil {
		return nil, err
	}
	cache.InvalidateCapacityOverview(ctx)
	log.Printf("[Lifecycle] sample %s moved to zone %s by %s", sampleID, zoneID, actor)
	return sample, nil
}

func (s *LifecycleService) RemoveFromZone(ctx context.Context, sampleID, actor string) (*models.Sample, error) {
	if err := validateActor(actor); err != nil {
		return nil, err
	}

	sample, err := s.Store.RemoveFromZone(ctx, sampleID, actor)
	s.record("remove", err)
	if err != nil {
		return nil, err
	}
	cache.InvalidateCapacityOverview(ctx)
	log.Printf("[Lifecycle] sample %s removed from storage by %s", sampleID, actor)
	return sample, nil
}

func (s *LifecycleService) record(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.TransitionsTotal.WithLabelValues(operation, outcome).Inc()
}
