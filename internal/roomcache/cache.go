package roomcache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/cardoza1991/Room-Reservation-App/internal/store"
	"github.com/cardoza1991/Room-Reservation-App/internal/timefmt"
)

// Status is a room's derived occupancy state.
type Status string

const (
	StatusVacant   Status = "vacant"
	StatusOccupied Status = "occupied"
)

// Slot is one reservation attached to a cached room. Stamps stay in their
// stored "YYYY-MM-DD HH:MM" form.
type Slot struct {
	StartTime   string
	EndTime     string
	TeacherName string
	StudentName string
	Purpose     string
}

// Room is the in-memory projection of a room row plus its reservations and
// derived status.
type Room struct {
	ID         int64
	BuildingID int64
	Name       string
	Floor      int
	Capacity   int
	Features   []string
	Status     Status
	Slots      []Slot
}

// Listing is one row of the filtered display: the room label and its
// current status.
type Listing struct {
	Label  string `json:"label"`
	Status Status `json:"status"`
}

// Criteria are the conjunctive room filters. Floor and Feature treat "Any"
// (or empty) as a wildcard; MinCapacity zero is unconstrained.
type Criteria struct {
	Floor       string
	MinCapacity int
	Feature     string
}

// Cache is the in-memory room set for the currently selected building,
// keyed by room name in store fetch order. It is rebuilt wholesale on
// every selection change and after every mutation, never patched.
type Cache struct {
	mu         sync.RWMutex
	buildingID int64
	order      []string
	rooms      map[string]*Room
}

// New returns an empty cache with no building selected.
func New() *Cache {
	return &Cache{rooms: make(map[string]*Room)}
}

// Reload discards the cache and rebuilds it for the given building. A zero
// buildingID means no selection and yields an empty cache. Reservations
// are attached by scanning the full reservation table in memory. Every
// room starts vacant; the next occupancy check settles the real status.
func (c *Cache) Reload(ctx context.Context, st store.Store, buildingID int64) error {
	order := make([]string, 0)
	rooms := make(map[string]*Room)

	if buildingID != 0 {
		fetched, err := st.RoomsByBuilding(ctx, buildingID)
		if err != nil {
			return err
		}
		reservations, err := st.AllReservations(ctx)
		if err != nil {
			return err
		}

		byID := make(map[int64]*Room, len(fetched))
		for _, r := range fetched {
			room := &Room{
				ID:         r.ID,
				BuildingID: r.BuildingID,
				Name:       r.Name,
				Floor:      r.Floor,
				Capacity:   r.Capacity,
				Features:   timefmt.SplitFeatures(r.Features),
				Status:     StatusVacant,
			}
			if _, dup := rooms[r.Name]; !dup {
				order = append(order, r.Name)
			}
			rooms[r.Name] = room
			byID[r.ID] = room
		}

		for _, res := range reservations {
			if room, ok := byID[res.RoomID]; ok {
				room.Slots = append(room.Slots, Slot{
					StartTime:   res.StartTime,
					EndTime:     res.EndTime,
					TeacherName: res.TeacherName,
					StudentName: res.StudentName,
					Purpose:     res.Purpose,
				})
			}
		}
	}

	c.mu.Lock()
	c.buildingID = buildingID
	c.order = order
	c.rooms = rooms
	c.mu.Unlock()
	return nil
}

// CheckOccupancy recomputes every cached room's status against now, which
// must be a naive minute-resolution timestamp (parsed from the same local
// wall-clock space the slots are stored in). A room is occupied iff some
// slot satisfies start <= now < end. Returns the IDs of rooms that flipped
// from occupied to vacant, for the vacancy notifier.
func (c *Cache) CheckOccupancy(now time.Time) []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var becameVacant []int64
	for _, name := range c.order {
		room := c.rooms[name]
		occupied := false
		for _, slot := range room.Slots {
			start, err := time.Parse(timefmt.Storage, slot.StartTime)
			if err != nil {
				continue
			}
			end, err := time.Parse(timefmt.Storage, slot.EndTime)
			if err != nil {
				continue
			}
			if !now.Before(start) && now.Before(end) {
				occupied = true
				break
			}
		}
		if occupied {
			room.Status = StatusOccupied
		} else {
			if room.Status == StatusOccupied {
				becameVacant = append(becameVacant, room.ID)
			}
			room.Status = StatusVacant
		}
	}
	return becameVacant
}

// Filter returns the cached rooms matching all criteria, in insertion
// order.
func (c *Cache) Filter(crit Criteria) []Listing {
	c.mu.RLock()
	defer c.mu.RUnlock()

	listings := make([]Listing, 0)
	for _, name := range c.order {
		room := c.rooms[name]
		if crit.Floor != "" && crit.Floor != "Any" && strconv.Itoa(room.Floor) != crit.Floor {
			continue
		}
		if crit.MinCapacity != 0 && room.Capacity < crit.MinCapacity {
			continue
		}
		if crit.Feature != "" && crit.Feature != "Any" && !hasFeature(room.Features, crit.Feature) {
			continue
		}
		listings = append(listings, Listing{Label: room.Name, Status: room.Status})
	}
	return listings
}

func hasFeature(features []string, want string) bool {
	for _, f := range features {
		if f == want {
			return true
		}
	}
	return false
}

// Lookup returns a copy of the named room.
func (c *Cache) Lookup(name string) (Room, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	room, ok := c.rooms[name]
	if !ok {
		return Room{}, false
	}
	return *room, true
}

// BuildingID returns the currently selected building, zero when none.
func (c *Cache) BuildingID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buildingID
}

// Len returns the number of cached rooms.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Names returns the cached room names in insertion order.
func (c *Cache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Snapshot returns copies of all cached rooms in insertion order.
func (c *Cache) Snapshot() []Room {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rooms := make([]Room, 0, len(c.order))
	for _, name := range c.order {
		rooms = append(rooms, *c.rooms[name])
	}
	return rooms
}
