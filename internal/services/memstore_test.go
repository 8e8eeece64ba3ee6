package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"biobank-backend/internal/models"
)

// memStore is an in-memory double for every store interface. It enforces the
// same transition, capacity and ledger rules as the pgx repositories so the
// services can be exercised without a database.
type memStore struct {
	mu      sync.Mutex
	samples map[string]*models.Sample
	zones   map[string]*models.StorageZone
	events  []*models.CustodyEvent
	users   map[int]*models.User
	seq     int64
	nextUID int
}

func newMemStore() *memStore {
	return &memStore{
		samples: make(map[string]*models.Sample),
		zones:   make(map[string]*models.StorageZone),
		users:   make(map[int]*models.User),
	}
}

func copySample(s *models.Sample) *models.Sample {
	out := *s
	if s.CurrentZoneID != nil {
		z := *s.CurrentZoneID
		out.CurrentZoneID = &z
	}
	return &out
}

func (m *memStore) appendEvent(sampleID, eventType, from, to, actor string) {
	m.seq++
	m.events = append(m.events, &models.CustodyEvent{
		SequenceNo: m.seq,
		SampleID:   sampleID,
		EventType:  eventType,
		FromValue:  from,
		ToValue:    to,
		Actor:      actor,
		CreatedAt:  time.Now().UTC(),
	})
}

// SampleStore

func (m *memStore) CreateSample(ctx context.Context, s *models.Sample) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.samples {
		if existing.Barcode == s.Barcode {
			return models.ErrDuplicateBarcode
		}
	}
	s.CreatedAt = time.Now().UTC()
	s.UpdatedAt = s.CreatedAt
	m.samples[s.ID] = copySample(s)
	return nil
}

func (m *memStore) GetSample(ctx context.Context, id string) (*models.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.samples[id]
	if !ok {
		return nil, fmt.Errorf("sample %s: %w", id, models.ErrNotFound)
	}
	return copySample(s), nil
}

func (m *memStore) GetSampleByBarcode(ctx context.Context, barcode string) (*models.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.samples {
		if s.Barcode == barcode {
			return copySample(s), nil
		}
	}
	return nil, fmt.Errorf("barcode %s: %w", barcode, models.ErrNotFound)
}

func (m *memStore) Scan(ctx context.Context, barcode string) (*models.ScanResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.samples {
		if s.Barcode != barcode {
			continue
		}
		result := &models.ScanResult{Sample: copySample(s), State: s.State}
		if s.CurrentZoneID != nil {
			if z, ok := m.zones[*s.CurrentZoneID]; ok {
				zc := *z
				result.Zone = &zc
			}
		}
		return result, nil
	}
	return nil, fmt.Errorf("barcode %s: %w", barcode, models.ErrNotFound)
}

func (m *memStore) StateCounts(ctx context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[string]int)
	for _, s := range m.samples {
		counts[s.State]++
	}
	return counts, nil
}

// LifecycleStore

func (m *memStore) AdvanceState(ctx context.Context, sampleID, target, actor string) (*models.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.samples[sampleID]
	if !ok {
		return nil, fmt.Errorf("sample %s: %w", sampleID, models.ErrNotFound)
	}
	if target == models.StateInStorage || !models.CanTransition(s.State, target) {
		return nil, &models.TransitionError{SampleID: sampleID, CurrentState: s.State, RequestedState: target}
	}
	if target == models.StateInSequencing && s.CurrentZoneID != nil {
		return nil, &models.TransitionError{SampleID: sampleID, CurrentState: s.State, RequestedState: target}
	}

	from := s.State
	s.State = target
	s.UpdatedAt = time.Now().UTC()
	m.appendEvent(sampleID, models.EventStateChange, from, target, actor)
	return copySample(s), nil
}

func (m *memStore) AssignToZone(ctx context.Context, sampleID, zoneID, actor string) (*models.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.samples[sampleID]
	if !ok {
		return nil, fmt.Errorf("sample %s: %w", sampleID, models.ErrNotFound)
	}
	if s.State != models.StateValidated {
		return nil, &models.TransitionError{SampleID: sampleID, CurrentState: s.State, RequestedState: models.StateInStorage}
	}
	z, ok := m.zones[zoneID]
	if !ok {
		return nil, fmt.Errorf("zone %s: %w", zoneID, models.ErrNotFound)
	}
	if !models.CompatibleStorage(s.StorageClass, z.TemperatureClass) {
		return nil, fmt.Errorf("zone %s: %w", zoneID, models.ErrTemperatureClassMismatch)
	}
	if z.OccupiedCount >= z.Capacity {
		return nil, fmt.Errorf("zone %s: %w", zoneID, models.ErrCapacityExceeded)
	}

	z.OccupiedCount++
	s.State = models.StateInStorage
	s.CurrentZoneID = &z.ID
	s.UpdatedAt = time.Now().UTC()
	m.appendEvent(sampleID, models.EventZoneAssign, "", zoneID, actor)
	return copySample(s), nil
}

func (m *memStore) MoveToZone(ctx context.Context, sampleID, zoneID, actor string) (*models.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.samples[sampleID]
	if !ok {
		return nil, fmt.Errorf("sample %s: %w", sampleID, models.ErrNotFound)
	}
	if s.State != models.StateInStorage || s.CurrentZoneID == nil {
		return nil, &models.TransitionError{SampleID: sampleID, CurrentState: s.State, RequestedState: models.StateInStorage}
	}
	oldZoneID := *s.CurrentZoneID
	if oldZoneID == zoneID {
		return nil, fmt.Errorf("sample %s already in zone %s: %w", sampleID, zoneID, models.ErrValidation)
	}
	newZone, ok := m.zones[zoneID]
	if !ok {
		return nil, fmt.Errorf("zone %s: %w", zoneID, models.ErrNotFound)
	}
	oldZone, ok := m.zones[oldZoneID]
	if !ok {
		return nil, fmt.Errorf("zone %s: %w", oldZoneID, models.ErrNotFound)
	}
	if !models.CompatibleStorage(s.StorageClass, newZone.TemperatureClass) {
		return nil, fmt.Errorf("zone %s: %w", zoneID, models.ErrTemperatureClassMismatch)
	}
	if newZone.OccupiedCount >= newZone.Capacity {
		return nil, fmt.Errorf("zone %s: %w", zoneID, models.ErrCapacityExceeded)
	}
	if oldZone.OccupiedCount <= 0 {
		return nil, fmt.Errorf("zone %s: %w", oldZoneID, models.ErrUnderflow)
	}

	newZone.OccupiedCount++
	oldZone.OccupiedCount--
	s.CurrentZoneID = &newZone.ID
	s.UpdatedAt = time.Now().UTC()
	m.appendEvent(sampleID, models.EventZoneMove, oldZoneID, zoneID, actor)
	return copySample(s), nil
}

func (m *memStore) RemoveFromZone(ctx context.Context, sampleID, actor string) (*models.Sample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.samples[sampleID]
	if !ok {
		return nil, fmt.Errorf("sample %s: %w", sampleID, models.ErrNotFound)
	}
	if s.State != models.StateInStorage || s.CurrentZoneID == nil {
		return nil, &models.TransitionError{SampleID: sampleID, CurrentState: s.State, RequestedState: models.StateInStorage}
	}
	zoneID := *s.CurrentZoneID
	z, ok := m.zones[zoneID]
	if !ok {
		return nil, fmt.Errorf("zone %s: %w", zoneID, models.ErrNotFound)
	}
	if z.OccupiedCount <= 0 {
		return nil, fmt.Errorf("zone %s: %w", zoneID, models.ErrUnderflow)
	}

	z.OccupiedCount--
	s.CurrentZoneID = nil
	s.UpdatedAt = time.Now().UTC()
	m.appendEvent(sampleID, models.EventZoneRemove, zoneID, "", actor)
	return copySample(s), nil
}

// ZoneStore

func (m *memStore) CreateZone(ctx context.Context, z *models.StorageZone) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.zones[z.ID]; exists {
		return fmt.Errorf("zone %s: %w", z.ID, models.ErrZoneExists)
	}
	z.CreatedAt = time.Now().UTC()
	z.UpdatedAt = z.CreatedAt
	zc := *z
	m.zones[z.ID] = &zc
	return nil
}

func (m *memStore) GetZone(ctx context.Context, id string) (*models.StorageZone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	z, ok := m.zones[id]
	if !ok {
		return nil, fmt.Errorf("zone %s: %w", id, models.ErrNotFound)
	}
	zc := *z
	return &zc, nil
}

func (m *memStore) AmendCapacity(ctx context.Context, id string, capacity int) (*models.StorageZone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	z, ok := m.zones[id]
	if !ok {
		return nil, fmt.Errorf("zone %s: %w", id, models.ErrNotFound)
	}
	if capacity < z.OccupiedCount {
		return nil, fmt.Errorf("zone %s holds %d samples: %w", id, z.OccupiedCount, models.ErrInvalidCapacity)
	}
	z.Capacity = capacity
	z.UpdatedAt = time.Now().UTC()
	zc := *z
	return &zc, nil
}

func (m *memStore) CapacityOverview(ctx context.Context) ([]*models.ZoneSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.ZoneSummary, 0, len(m.zones))
	for _, z := range m.zones {
		out = append(out, &models.ZoneSummary{
			ZoneID:           z.ID,
			TemperatureClass: z.TemperatureClass,
			Capacity:         z.Capacity,
			OccupiedCount:    z.OccupiedCount,
		})
	}
	return out, nil
}

// LedgerStore

func (m *memStore) History(ctx context.Context, sampleID string) ([]*models.CustodyEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.CustodyEvent
	for _, e := range m.events {
		if e.SampleID == sampleID {
			ec := *e
			out = append(out, &ec)
		}
	}
	return out, nil
}

func (m *memStore) ListAfter(ctx context.Context, afterSeq int64, limit int) ([]*models.CustodyEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.CustodyEvent
	for _, e := range m.events {
		if e.SequenceNo > afterSeq {
			ec := *e
			out = append(out, &ec)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

// UserStore

func (m *memStore) Create(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email %s: %w", u.Email, models.ErrEmailExists)
		}
	}
	m.nextUID++
	u.ID = m.nextUID
	u.CreatedAt = time.Now().UTC()
	uc := *u
	m.users[u.ID] = &uc
	return nil
}

func (m *memStore) Get(ctx context.Context, id int) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d: %w", id, models.ErrNotFound)
	}
	uc := *u
	return &uc, nil
}

func (m *memStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			uc := *u
			return &uc, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, models.ErrNotFound)
}

// zoneOccupancy reads the current occupancy for assertions.
func (m *memStore) zoneOccupancy(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if z, ok := m.zones[id]; ok {
		return z.OccupiedCount
	}
	return -1
}
