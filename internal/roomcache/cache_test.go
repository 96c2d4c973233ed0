package roomcache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cardoza1991/Room-Reservation-App/internal/model"
	"github.com/cardoza1991/Room-Reservation-App/internal/store"
	"github.com/cardoza1991/Room-Reservation-App/internal/timefmt"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.Building{}, &model.Room{}, &model.Reservation{}))
	return store.NewGormStore(db)
}

func mustStamp(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(timefmt.Storage, s)
	require.NoError(t, err)
	return ts
}

func TestCheckOccupancyHalfOpenInterval(t *testing.T) {
	cache := New()
	cache.order = []string{"101"}
	cache.rooms = map[string]*Room{
		"101": {
			ID:     1,
			Name:   "101",
			Status: StatusVacant,
			Slots: []Slot{
				{StartTime: "2024-03-01 10:00", EndTime: "2024-03-01 11:00"},
			},
		},
	}

	testCases := []struct {
		now      string
		expected Status
	}{
		{"2024-03-01 09:59", StatusVacant},
		{"2024-03-01 10:00", StatusOccupied}, // start boundary occupies
		{"2024-03-01 10:59", StatusOccupied},
		{"2024-03-01 11:00", StatusVacant}, // end boundary frees
		{"2024-03-01 12:00", StatusVacant},
	}

	for _, tc := range testCases {
		t.Run(tc.now, func(t *testing.T) {
			cache.CheckOccupancy(mustStamp(t, tc.now))
			room, ok := cache.Lookup("101")
			require.True(t, ok)
			assert.Equal(t, tc.expected, room.Status)
		})
	}
}

func TestCheckOccupancyReportsVacancyFlips(t *testing.T) {
	cache := New()
	cache.order = []string{"101", "102"}
	cache.rooms = map[string]*Room{
		"101": {ID: 1, Name: "101", Status: StatusVacant, Slots: []Slot{{StartTime: "2024-03-01 10:00", EndTime: "2024-03-01 11:00"}}},
		"102": {ID: 2, Name: "102", Status: StatusVacant},
	}

	flips := cache.CheckOccupancy(mustStamp(t, "2024-03-01 10:30"))
	assert.Empty(t, flips, "becoming occupied is not a flip to vacant")

	flips = cache.CheckOccupancy(mustStamp(t, "2024-03-01 11:00"))
	assert.Equal(t, []int64{1}, flips)

	// Already vacant; no repeat notification.
	flips = cache.CheckOccupancy(mustStamp(t, "2024-03-01 11:01"))
	assert.Empty(t, flips)
}

func TestCheckOccupancySkipsMalformedSlots(t *testing.T) {
	cache := New()
	cache.order = []string{"101"}
	cache.rooms = map[string]*Room{
		"101": {ID: 1, Name: "101", Status: StatusVacant, Slots: []Slot{{StartTime: "garbage", EndTime: "2024-03-01 11:00"}}},
	}

	cache.CheckOccupancy(mustStamp(t, "2024-03-01 10:30"))
	room, _ := cache.Lookup("101")
	assert.Equal(t, StatusVacant, room.Status)
}

func TestFilterConjunction(t *testing.T) {
	cache := New()
	cache.order = []string{"A", "B"}
	cache.rooms = map[string]*Room{
		"A": {ID: 1, Name: "A", Floor: 1, Capacity: 10, Features: []string{"Audio"}, Status: StatusVacant},
		"B": {ID: 2, Name: "B", Floor: 2, Capacity: 30, Features: []string{"Video"}, Status: StatusVacant},
	}

	testCases := []struct {
		name     string
		crit     Criteria
		expected []string
	}{
		{
			name:     "floor, capacity and feature together",
			crit:     Criteria{Floor: "1", MinCapacity: 5, Feature: "Audio"},
			expected: []string{"A"},
		},
		{
			name:     "all wildcards return both",
			crit:     Criteria{Floor: "Any", MinCapacity: 0, Feature: "Any"},
			expected: []string{"A", "B"},
		},
		{
			name:     "empty criteria behave as wildcards",
			crit:     Criteria{},
			expected: []string{"A", "B"},
		},
		{
			name:     "capacity excludes the small room",
			crit:     Criteria{Floor: "Any", MinCapacity: 20, Feature: "Any"},
			expected: []string{"B"},
		},
		{
			name:     "feature matches exactly, no fuzz",
			crit:     Criteria{Feature: "audio"},
			expected: []string{},
		},
		{
			name:     "conjunction can be empty",
			crit:     Criteria{Floor: "1", Feature: "Video"},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			listings := cache.Filter(tc.crit)
			labels := make([]string, 0, len(listings))
			for _, l := range listings {
				labels = append(labels, l.Label)
			}
			assert.Equal(t, tc.expected, labels)
		})
	}
}

func TestReloadBuildsFromStore(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	building, err := st.CreateBuilding(ctx, "Main")
	require.NoError(t, err)
	other, err := st.CreateBuilding(ctx, "Annex")
	require.NoError(t, err)

	first := model.Room{Name: "101", BuildingID: building.ID, Floor: 1, Capacity: 10, Features: "Audio,Display"}
	second := model.Room{Name: "201", BuildingID: building.ID, Floor: 2, Capacity: 20, Features: ""}
	foreign := model.Room{Name: "X1", BuildingID: other.ID, Floor: 1, Capacity: 5}
	require.NoError(t, st.CreateRoom(ctx, &first))
	require.NoError(t, st.CreateRoom(ctx, &second))
	require.NoError(t, st.CreateRoom(ctx, &foreign))

	res := model.Reservation{RoomID: first.ID, StartTime: "2024-03-01 09:00", EndTime: "2024-03-01 10:00", TeacherName: "T", StudentName: "S", Purpose: "p"}
	require.NoError(t, st.CreateReservation(ctx, &res))

	cache := New()
	require.NoError(t, cache.Reload(ctx, st, building.ID))

	assert.Equal(t, building.ID, cache.BuildingID())
	assert.Equal(t, []string{"101", "201"}, cache.Names(), "insertion order follows store fetch order")

	room, ok := cache.Lookup("101")
	require.True(t, ok)
	assert.Equal(t, StatusVacant, room.Status, "freshly loaded rooms start vacant")
	assert.Equal(t, []string{"Audio", "Display"}, room.Features)
	require.Len(t, room.Slots, 1)
	assert.Equal(t, "2024-03-01 09:00", room.Slots[0].StartTime)

	_, ok = cache.Lookup("X1")
	assert.False(t, ok, "other buildings' rooms stay out of the cache")
}

func TestReloadIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	building, err := st.CreateBuilding(ctx, "Main")
	require.NoError(t, err)
	for i, name := range []string{"101", "102", "103"} {
		room := model.Room{Name: name, BuildingID: building.ID, Floor: i + 1, Capacity: 10 * (i + 1), Features: "Audio"}
		require.NoError(t, st.CreateRoom(ctx, &room))
	}

	cache := New()
	require.NoError(t, cache.Reload(ctx, st, building.ID))
	before := cache.Snapshot()

	require.NoError(t, cache.Reload(ctx, st, building.ID))
	after := cache.Snapshot()

	assert.Equal(t, before, after, "reloading with no intervening mutation changes nothing")
}

func TestReloadWithNoSelectionEmptiesCache(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	building, err := st.CreateBuilding(ctx, "Main")
	require.NoError(t, err)
	room := model.Room{Name: "101", BuildingID: building.ID, Floor: 1, Capacity: 10}
	require.NoError(t, st.CreateRoom(ctx, &room))

	cache := New()
	require.NoError(t, cache.Reload(ctx, st, building.ID))
	require.Equal(t, 1, cache.Len())

	require.NoError(t, cache.Reload(ctx, st, 0))
	assert.Zero(t, cache.Len())
	assert.Zero(t, cache.BuildingID())
	assert.Empty(t, cache.Filter(Criteria{}))
}
