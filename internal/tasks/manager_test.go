package tasks

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager()
	placeID := uuid.New()

	task := m.Create(placeID)
	require.Equal(t, StatusPending, task.Status)
	require.Equal(t, placeID, task.PlaceID)

	m.MarkRunning(task.ID)
	require.Equal(t, StatusRunning, m.Get(task.ID).Status)

	m.AddSourceResult(task.ID, SourceResult{Source: "Google Maps", Reviews: 12})
	m.AddSourceResult(task.ID, SourceResult{Source: "Reddit", Err: errors.New("rate limited")})
	m.MarkDone(task.ID, true)

	got := m.Get(task.ID)
	require.Equal(t, StatusDone, got.Status)
	require.True(t, got.SummaryGenerated)
	require.Equal(t, 12, got.ReviewsScraped)
	require.Len(t, got.Sources, 2)
	require.EqualError(t, got.Sources[1].Err, "rate limited")
}

func TestManager_GetUnknown(t *testing.T) {
	require.Nil(t, NewManager().Get(uuid.New()))
}

func TestManager_MarkFailed(t *testing.T) {
	m := NewManager()
	task := m.Create(uuid.New())

	m.MarkFailed(task.ID, errors.New("browser crashed"))

	got := m.Get(task.ID)
	require.Equal(t, StatusFailed, got.Status)
	require.EqualError(t, got.Err, "browser crashed")
}

func TestManager_GetReturnsSnapshot(t *testing.T) {
	m := NewManager()
	task := m.Create(uuid.New())
	m.AddSourceResult(task.ID, SourceResult{Source: "Google Maps", Reviews: 1})

	snap := m.Get(task.ID)
	snap.Sources[0].Reviews = 99
	snap.Status = StatusFailed

	got := m.Get(task.ID)
	require.Equal(t, 1, got.Sources[0].Reviews)
	require.Equal(t, StatusPending, got.Status)
}
