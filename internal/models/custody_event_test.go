package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayEmptyHistory(t *testing.T) {
	state, zoneID := Replay(nil)
	assert.Equal(t, StatePending, state)
	assert.Nil(t, zoneID)
}

func TestReplayFullLifecycle(t *testing.T) {
	events := []*CustodyEvent{
		{SequenceNo: 1, EventType: EventStateChange, FromValue: StatePending, ToValue: StateValidated},
		{SequenceNo: 2, EventType: EventZoneAssign, ToValue: "Z1"},
		{SequenceNo: 3, EventType: EventZoneMove, FromValue: "Z1", ToValue: "Z2"},
		{SequenceNo: 4, EventType: EventZoneRemove, FromValue: "Z2"},
		{SequenceNo: 5, EventType: EventStateChange, FromValue: StateInStorage, ToValue: StateInSequencing},
		{SequenceNo: 6, EventType: EventStateChange, FromValue: StateInSequencing, ToValue: StateCompleted},
	}

	state, zoneID := Replay(events)
	assert.Equal(t, StateCompleted, state)
	assert.Nil(t, zoneID)
}

func TestReplayStopsMidway(t *testing.T) {
	events := []*CustodyEvent{
		{SequenceNo: 1, EventType: EventStateChange, FromValue: StatePending, ToValue: StateValidated},
		{SequenceNo: 2, EventType: EventZoneAssign, ToValue: "Z1"},
	}

	state, zoneID := Replay(events)
	assert.Equal(t, StateInStorage, state)
	require.NotNil(t, zoneID)
	assert.Equal(t, "Z1", *zoneID)
}

func TestReplayRemoveKeepsState(t *testing.T) {
	events := []*CustodyEvent{
		{SequenceNo: 1, EventType: EventStateChange, FromValue: StatePending, ToValue: StateValidated},
		{SequenceNo: 2, EventType: EventZoneAssign, ToValue: "Z1"},
		{SequenceNo: 3, EventType: EventZoneRemove, FromValue: "Z1"},
	}

	state, zoneID := Replay(events)
	assert.Equal(t, StateInStorage, state)
	assert.Nil(t, zoneID)
}

func TestReplayMoveUpdatesZoneOnly(t *testing.T) {
	events := []*CustodyEvent{
		{SequenceNo: 1, EventType: EventStateChange, FromValue: StatePending, ToValue: StateValidated},
		{SequenceNo: 2, EventType: EventZoneAssign, ToValue: "Z1"},
		{SequenceNo: 3, EventType: EventZoneMove, FromValue: "Z1", ToValue: "Z3"},
	}

	state, zoneID := Replay(events)
	assert.Equal(t, StateInStorage, state)
	require.NotNil(t, zoneID)
	assert.Equal(t, "Z3", *zoneID)
}

func TestTransitionErrorUnwrapsToIllegalTransition(t *testing.T) {
	err := &TransitionError{SampleID: "s1", CurrentState: StatePending, RequestedState: StateCompleted}
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Contains(t, err.Error(), "PENDING -> COMPLETED")
}
