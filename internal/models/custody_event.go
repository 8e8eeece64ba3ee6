package models

import "time"

// Custody event types
const (
	EventStateChange = "STATE_CHANGE"
	EventZoneAssign  = "ZONE_ASSIGN"
	EventZoneMove    = "ZONE_MOVE"
	EventZoneRemove  = "ZONE_REMOVE"
)

// CustodyEvent is one immutable entry in the chain-of-custody ledger.
// SequenceNo is globally monotonic; events for one sample always appear in
// the order they were applied. FromValue/ToValue hold states for
// STATE_CHANGE and zone ids for the zone events.
type CustodyEvent struct {
	SequenceNo int64     `json:"sequence_no"`
	SampleID   string    `json:"sample_id"`
	EventType  string    `json:"event_type"`
	FromValue  string    `json:"from_value"`
	ToValue    string    `json:"to_value"`
	Actor      string    `json:"actor"`
	CreatedAt  time.Time `json:"created_at"`
}

// Replay folds a sample's custody history, in sequence order, into the
// (state, current zone) it implies. A freshly registered sample has no
// events and is PENDING with no zone. The ledger is the source of truth:
// the registry row must always agree with what Replay produces.
func Replay(events []*CustodyEvent) (state string, zoneID *string) {
	state = StatePending
	for _, e := range events {
		switch e.EventType {
		case EventStateChange:
			state = e.ToValue
		case EventZoneAssign:
			state = StateInStorage
			z := e.ToValue
			zoneID = &z
		case EventZoneMove:
			z := e.ToValue
			zoneID = &z
		case EventZoneRemove:
			// vacates the slot only; lifecycle state is not advanced
			zoneID = nil
		}
	}
	return state, zoneID
}
