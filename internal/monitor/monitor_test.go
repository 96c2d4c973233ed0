package monitor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/cardoza1991/Room-Reservation-App/config"
	"github.com/cardoza1991/Room-Reservation-App/internal/model"
	"github.com/cardoza1991/Room-Reservation-App/internal/notification"
	"github.com/cardoza1991/Room-Reservation-App/internal/roomcache"
	"github.com/cardoza1991/Room-Reservation-App/internal/store"
	"github.com/cardoza1991/Room-Reservation-App/internal/timefmt"
)

func testConfig() *config.Config {
	return &config.Config{
		Monitor: config.MonitorConfig{
			Enabled:         true,
			IntervalSeconds: 1,
			Interval:        time.Second,
			Timezone:        "UTC",
		},
		WorkerPool: config.WorkerPoolConfig{Size: 1},
	}
}

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

func TestNowIsNaiveMinuteResolution(t *testing.T) {
	svc, err := NewService(testConfig(), roomcache.New(), nil)
	require.NoError(t, err)

	now := svc.Now()
	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Second())
	assert.Zero(t, now.Nanosecond())
}

func TestNewServiceRejectsBadTimezone(t *testing.T) {
	cfg := testConfig()
	cfg.Monitor.Timezone = "Nowhere/Nonsense"
	_, err := NewService(cfg, roomcache.New(), nil)
	assert.Error(t, err)
}

// A room whose reservation just ended flips to vacant, and the flip is
// dispatched to the notification pool.
func TestCheckOnceDispatchesVacancyFlips(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	building, err := st.CreateBuilding(ctx, "Main")
	require.NoError(t, err)
	room := model.Room{Name: "101", BuildingID: building.ID, Floor: 1, Capacity: 10}
	require.NoError(t, st.CreateRoom(ctx, &room))

	// A reservation that ended one minute ago, but the room was last seen
	// occupied: it must flip and notify.
	svc, err := NewService(testConfig(), roomcache.New(), nil)
	require.NoError(t, err)
	now := svc.Now()

	res := model.Reservation{
		RoomID:      room.ID,
		StartTime:   now.Add(-30 * time.Minute).Format(timefmt.Storage),
		EndTime:     now.Add(-1 * time.Minute).Format(timefmt.Storage),
		TeacherName: "T", StudentName: "S", Purpose: "p",
	}
	require.NoError(t, st.CreateReservation(ctx, &res))

	cache := roomcache.New()
	require.NoError(t, cache.Reload(ctx, st, building.ID))
	// Seed the occupied state with a pass taken mid-reservation.
	cache.CheckOccupancy(now.Add(-10 * time.Minute))

	pool := notification.NewWorkerPool(1, nil, nil)
	svc, err = NewService(testConfig(), cache, pool)
	require.NoError(t, err)

	flips := svc.CheckOnce(ctx)
	require.Equal(t, []int64{room.ID}, flips)

	select {
	case id := <-pool.Jobs():
		assert.Equal(t, room.ID, id)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for dispatched room ID")
	}
}

func TestRunHonorsDisabledFlag(t *testing.T) {
	cfg := testConfig()
	cfg.Monitor.Enabled = false

	svc, err := NewService(cfg, roomcache.New(), nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately when disabled")
	}
}
