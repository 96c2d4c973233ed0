// Package command turns user actions into validated values the controller
// applies against the store before reloading the room cache. Dialogs (or
// their HTTP stand-ins) build commands; they never touch the store
// themselves.
package command

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cardoza1991/Room-Reservation-App/internal/model"
	"github.com/cardoza1991/Room-Reservation-App/internal/store"
	"github.com/cardoza1991/Room-Reservation-App/internal/timefmt"
)

// Room dialog spin ranges.
const (
	MinFloor    = 1
	MaxFloor    = 10
	MinCapacity = 1
	MaxCapacity = 100
)

var (
	ErrEmptyBuildingName  = errors.New("building name is required")
	ErrEmptyRoomName      = errors.New("room name is required")
	ErrFloorOutOfRange    = errors.New("floor must be between 1 and 10")
	ErrCapacityOutOfRange = errors.New("capacity must be between 1 and 100")
	ErrMissingFields      = errors.New("all reservation fields are required")
)

// Command is a validated mutation the controller applies to the store.
type Command interface {
	Validate() error
	Apply(ctx context.Context, st store.Store) error
}

// CreateBuilding inserts a new building. Created holds the row after a
// successful Apply.
type CreateBuilding struct {
	Name string

	Created model.Building
}

func (c *CreateBuilding) Validate() error {
	if c.Name == "" {
		return ErrEmptyBuildingName
	}
	return nil
}

func (c *CreateBuilding) Apply(ctx context.Context, st store.Store) error {
	building, err := st.CreateBuilding(ctx, c.Name)
	if err != nil {
		return err
	}
	c.Created = building
	return nil
}

// CreateRoom inserts a room into the selected building. Features is stored
// verbatim as comma-joined text.
type CreateRoom struct {
	BuildingID int64
	Name       string
	Floor      int
	Capacity   int
	Features   string

	Created model.Room
}

func (c *CreateRoom) Validate() error {
	if c.Name == "" {
		return ErrEmptyRoomName
	}
	if c.Floor < MinFloor || c.Floor > MaxFloor {
		return ErrFloorOutOfRange
	}
	if c.Capacity < MinCapacity || c.Capacity > MaxCapacity {
		return ErrCapacityOutOfRange
	}
	return nil
}

func (c *CreateRoom) Apply(ctx context.Context, st store.Store) error {
	room := model.Room{
		Name:       c.Name,
		BuildingID: c.BuildingID,
		Floor:      c.Floor,
		Capacity:   c.Capacity,
		Features:   c.Features,
	}
	if err := st.CreateRoom(ctx, &room); err != nil {
		return err
	}
	c.Created = room
	return nil
}

// Reserve books a room. Both stamps must normalize from the 12-hour form
// before any row is written; a parse failure aborts with nothing inserted.
// Overlap with existing reservations is deliberately not checked.
type Reserve struct {
	RoomID      int64
	Date        string
	Start       string
	End         string
	TeacherName string
	StudentName string
	Purpose     string

	Created model.Reservation
}

func (c *Reserve) Validate() error {
	if c.RoomID == 0 || c.Date == "" || c.Start == "" || c.End == "" ||
		c.TeacherName == "" || c.StudentName == "" || c.Purpose == "" {
		return ErrMissingFields
	}
	if _, err := timefmt.CombineStamp(c.Date, c.Start); err != nil {
		return err
	}
	if _, err := timefmt.CombineStamp(c.Date, c.End); err != nil {
		return err
	}
	return nil
}

func (c *Reserve) Apply(ctx context.Context, st store.Store) error {
	start, err := timefmt.CombineStamp(c.Date, c.Start)
	if err != nil {
		return err
	}
	end, err := timefmt.CombineStamp(c.Date, c.End)
	if err != nil {
		return err
	}

	res := model.Reservation{
		RoomID:      c.RoomID,
		StartTime:   start,
		EndTime:     end,
		TeacherName: c.TeacherName,
		StudentName: c.StudentName,
		Purpose:     c.Purpose,
	}
	if err := st.CreateReservation(ctx, &res); err != nil {
		return err
	}
	c.Created = res
	return nil
}

// DeleteReservation removes a single reservation keyed by room name plus
// the displayed 12-hour start time rederived against Today's date. The key
// can miss (or hit a same-clock reservation from another day); Deleted
// records how many rows actually went away. The caller reports success
// either way, matching the historical behavior.
type DeleteReservation struct {
	RoomName       string
	DisplayedStart string
	Today          time.Time

	Deleted int64
}

func (c *DeleteReservation) Validate() error {
	if c.RoomName == "" || c.DisplayedStart == "" {
		return ErrMissingFields
	}
	_, err := timefmt.RederiveStart(c.DisplayedStart, c.today())
	return err
}

func (c *DeleteReservation) Apply(ctx context.Context, st store.Store) error {
	startStamp, err := timefmt.RederiveStart(c.DisplayedStart, c.today())
	if err != nil {
		return err
	}
	rows, err := st.DeleteReservation(ctx, c.RoomName, startStamp)
	if err != nil {
		return err
	}
	c.Deleted = rows
	if rows == 0 {
		log.Printf("delete reservation %q %q matched no rows", c.RoomName, startStamp)
	}
	return nil
}

func (c *DeleteReservation) today() time.Time {
	if c.Today.IsZero() {
		return time.Now()
	}
	return c.Today
}

// DeleteRooms removes rooms and their reservations in one transaction.
type DeleteRooms struct {
	IDs []int64
}

func (c *DeleteRooms) Validate() error {
	return nil
}

func (c *DeleteRooms) Apply(ctx context.Context, st store.Store) error {
	return st.DeleteRooms(ctx, c.IDs)
}
