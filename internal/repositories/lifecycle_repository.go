package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"biobank-backend/internal/metrics"
	"biobank-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LifecycleRepository owns the composite transitions. Each operation is one
// database transaction: the sample row is locked FOR UPDATE (serializing
// transitions per sample), zone occupancy moves through conditional updates
// (serializing reservations per zone), and the custody event is inserted
// before commit, so no mutation becomes visible without its ledger entry.
type LifecycleRepository struct {
	DB *pgxpool.Pool

	// LockTimeoutMS bounds waiting on a contended sample or zone row so hot
	// rows fail fast instead of queueing callers.
	LockTimeoutMS int
}

func NewLifecycleRepository(db *pgxpool.Pool, lockTimeoutMS int) *LifecycleRepository {
	if lockTimeoutMS <= 0 {
		lockTimeoutMS = 2000
	}
	return &LifecycleRepository{DB: db, LockTimeoutMS: lockTimeoutMS}
}

func (r *LifecycleRepository) begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// SET LOCAL scopes the timeout to this transaction. The value cannot be
	// a bind parameter.
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.LockTimeoutMS)); err != nil {
		tx.Rollback(ctx)
		return nil, err
	}
	return tx, nil
}

func lockSample(ctx context.Context, tx pgx.Tx, id string) (*models.Sample, error) {
	row := tx.QueryRow(ctx,
		`SELECT `+sampleColumns+` FROM samples WHERE id=$1 FOR UPDATE`, id)
	s, err := scanSample(row)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("sample %s: %w", id, models.ErrNotFound)
	}
	return s, err
}

func lockZone(ctx context.Context, tx pgx.Tx, id string) (*models.StorageZone, error) {
	var z models.StorageZone
	err := tx.QueryRow(ctx,
		`SELECT id, temperature_class, capacity, occupied_count, created_at, updated_at
         FROM storage_zones WHERE id=$1 FOR UPDATE`, id,
	).Scan(&z.ID, &z.TemperatureClass, &z.Capacity, &z.OccupiedCount, &z.CreatedAt, &z.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("zone %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}

// reserveZone claims one slot. The check and the increment are a single
// atomic statement; with the zone row already locked the condition can only
// fail when the zone is genuinely full.
func reserveZone(ctx context.Context, tx pgx.Tx, zoneID string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE storage_zones
         SET occupied_count = occupied_count + 1, updated_at = NOW()
         WHERE id = $1 AND occupied_count < capacity`, zoneID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("zone %s: %w", zoneID, models.ErrCapacityExceeded)
	}
	return nil
}

// releaseZone vacates one slot. Hitting zero rows here means the books were
// already wrong; that is an integrity alarm, never a silent clamp.
func releaseZone(ctx context.Context, tx pgx.Tx, zoneID string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE storage_zones
         SET occupied_count = occupied_count - 1, updated_at = NOW()
         WHERE id = $1 AND occupied_count > 0`, zoneID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		log.Printf("[IntegrityAlarm] release of zone %s would underflow occupancy", zoneID)
		metrics.IntegrityAlarmsTotal.Inc()
		return fmt.Errorf("zone %s: %w", zoneID, models.ErrUnderflow)
	}
	return nil
}

func appendEvent(ctx context.Context, tx pgx.Tx, e *models.CustodyEvent) error {
	err := tx.QueryRow(ctx,
		`INSERT INTO custody_events(sample_id, event_type, from_value, to_value, actor)
         VALUES($1, $2, $3, $4, $5)
         RETURNING sequence_no, created_at`,
		e.SampleID, e.EventType, e.FromValue, e.ToValue, e.Actor,
	).Scan(&e.SequenceNo, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("append custody event: %w", err)
	}
	return nil
}

func updateSample(ctx context.Context, tx pgx.Tx, s *models.Sample) error {
	_, err := tx.Exec(ctx,
		`UPDATE samples SET state=$2, current_zone_id=$3, updated_at=NOW() WHERE id=$1`,
		s.ID, s.State, s.CurrentZoneID)
	return err
}

// AdvanceState applies a pure lifecycle transition (no storage involved).
// IN_STORAGE is reachable only through AssignToZone, and leaving storage for
// sequencing requires the physical slot to have been vacated first.
func (r *LifecycleRepository) AdvanceState(ctx context.Context, sampleID, target, actor string) (*models.Sample, error) {
	tx, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sample, err := lockSample(ctx, tx, sampleID)
	if err != nil {
		return nil, err
	}

	if target == models.StateInStorage || !models.CanTransition(sample.State, target) {
		return nil, &models.TransitionError{
			SampleID: sampleID, CurrentState: sample.State, RequestedState: target,
		}
	}
	if target == models.StateInSequencing && sample.CurrentZoneID != nil {
		// still occupying a slot; must be removed from the zone first
		return nil, &models.TransitionError{
			SampleID: sampleID, CurrentState: sample.State, RequestedState: target,
		}
	}

	from := sample.State
	sample.State = target
	if err := updateSample(ctx, tx, sample); err != nil {
		return nil, err
	}
	if err := appendEvent(ctx, tx, &models.CustodyEvent{
		SampleID:  sampleID,
		EventType: models.EventStateChange,
		FromValue: from,
		ToValue:   target,
		Actor:     actor,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return sample, nil
}

// AssignToZone reserves a slot and puts a VALIDATED sample into storage.
func (r *LifecycleRepository) AssignToZone(ctx context.Context, sampleID, zoneID, actor string) (*models.Sample, error) {
	tx, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sample, err := lockSample(ctx, tx, sampleID)
	if err != nil {
		return nil, err
	}
	if sample.State != models.StateValidated {
		return nil, &models.TransitionError{
			SampleID: sampleID, CurrentState: sample.State, RequestedState: models.StateInStorage,
		}
	}

	zone, err := lockZone(ctx, tx, zoneID)
	if err != nil {
		return nil, err
	}
	if !models.CompatibleStorage(sample.StorageClass, zone.TemperatureClass) {
		return nil, fmt.Errorf("sample %s requires %s, zone %s is %s: %w",
			sampleID, sample.StorageClass, zoneID, zone.TemperatureClass,
			models.ErrTemperatureClassMismatch)
	}

	if err := reserveZone(ctx, tx, zoneID); err != nil {
		return nil, err
	}

	sample.State = models.StateInStorage
	sample.CurrentZoneID = &zone.ID
	if err := updateSample(ctx, tx, sample); err != nil {
		return nil, err
	}
	if err := appendEvent(ctx, tx, &models.CustodyEvent{
		SampleID:  sampleID,
		EventType: models.EventZoneAssign,
		ToValue:   zoneID,
		Actor:     actor,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return sample, nil
}

// MoveToZone relocates a stored sample. The new slot is reserved before the
// old one is released, so a failed move leaves the sample exactly where it
// was. Zone rows are locked in id order to keep concurrent opposing moves
// from deadlocking.
func (r *LifecycleRepository) MoveToZone(ctx context.Context, sampleID, newZoneID, actor string) (*models.Sample, error) {
	tx, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sample, err := lockSample(ctx, tx, sampleID)
	if err != nil {
		return nil, err
	}
	if sample.State != models.StateInStorage || sample.CurrentZoneID == nil {
		return nil, &models.TransitionError{
			SampleID: sampleID, CurrentState: sample.State, RequestedState: models.StateInStorage,
		}
	}
	oldZoneID := *sample.CurrentZoneID
	if oldZoneID == newZoneID {
		return nil, fmt.Errorf("sample %s already in zone %s: %w",
			sampleID, newZoneID, models.ErrValidation)
	}

	zones := map[string]*models.StorageZone{}
	ids := []string{oldZoneID, newZoneID}
	sort.Strings(ids)
	for _, id := range ids {
		z, err := lockZone(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		zones[id] = z
	}

	newZone := zones[newZoneID]
	if !models.CompatibleStorage(sample.StorageClass, newZone.TemperatureClass) {
		return nil, fmt.Errorf("sample %s requires %s, zone %s is %s: %w",
			sampleID, sample.StorageClass, newZoneID, newZone.TemperatureClass,
			models.ErrTemperatureClassMismatch)
	}

	if err := reserveZone(ctx, tx, newZoneID); err != nil {
		return nil, err
	}
	if err := releaseZone(ctx, tx, oldZoneID); err != nil {
		return nil, err
	}

	sample.CurrentZoneID = &newZone.ID
	if err := updateSample(ctx, tx, sample); err != nil {
		return nil, err
	}
	if err := appendEvent(ctx, tx, &models.CustodyEvent{
		SampleID:  sampleID,
		EventType: models.EventZoneMove,
		FromValue: oldZoneID,
		ToValue:   newZoneID,
		Actor:     actor,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return sample, nil
}

// RemoveFromZone vacates the physical slot without advancing the lifecycle;
// a follow-up AdvanceState moves the sample on to sequencing.
func (r *LifecycleRepository) RemoveFromZone(ctx context.Context, sampleID, actor string) (*models.Sample, error) {
	tx, err := r.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	sample, err := lockSample(ctx, tx, sampleID)
	if err != nil {
		return nil, err
	}
	if sample.State != models.StateInStorage || sample.CurrentZoneID == nil {
		return nil, &models.TransitionError{
			SampleID: sampleID, CurrentState: sample.State, RequestedState: models.StateInStorage,
		}
	}
	zoneID := *sample.CurrentZoneID

	if _, err := lockZone(ctx, tx, zoneID); err != nil {
		return nil, err
	}
	if err := releaseZone(ctx, tx, zoneID); err != nil {
		return nil, err
	}

	sample.CurrentZoneID = nil
	if err := updateSample(ctx, tx, sample); err != nil {
		return nil, err
	}
	if err := appendEvent(ctx, tx, &models.CustodyEvent{
		SampleID:  sampleID,
		EventType: models.EventZoneRemove,
		FromValue: zoneID,
		Actor:     actor,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return sample, nil
}
