package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cardoza1991/Room-Reservation-App/internal/model"
)

// ReservationRow is a reservation joined with its room's name, as shown in
// the reservations view.
type ReservationRow struct {
	RoomName    string `json:"room"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TeacherName string `json:"teacher_name"`
	StudentName string `json:"student_name"`
	Purpose     string `json:"purpose"`
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	ListBuildings(ctx context.Context) ([]model.Building, error)
	CreateBuilding(ctx context.Context, name string) (model.Building, error)
	BuildingExists(ctx context.Context, id int64) (bool, error)

	RoomsByBuilding(ctx context.Context, buildingID int64) ([]model.Room, error)
	CreateRoom(ctx context.Context, room *model.Room) error
	DeleteRooms(ctx context.Context, roomIDs []int64) error

	AllReservations(ctx context.Context) ([]model.Reservation, error)
	CreateReservation(ctx context.Context, res *model.Reservation) error
	ReservationRows(ctx context.Context) ([]ReservationRow, error)
	DeleteReservation(ctx context.Context, roomName, startStamp string) (int64, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) ListBuildings(ctx context.Context) ([]model.Building, error) {
	var buildings []model.Building
	if err := s.db.WithContext(ctx).Find(&buildings).Error; err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	return buildings, nil
}

func (s *gormStore) CreateBuilding(ctx context.Context, name string) (model.Building, error) {
	building := model.Building{Name: name}
	if err := s.db.WithContext(ctx).Create(&building).Error; err != nil {
		return model.Building{}, fmt.Errorf("failed to create building %q: %w", name, err)
	}
	return building, nil
}

func (s *gormStore) BuildingExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Building{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up building %d: %w", id, err)
	}
	return count > 0, nil
}

// RoomsByBuilding returns the building's rooms in store fetch order. The
// room cache preserves this ordering, so it must stay stable across calls.
func (s *gormStore) RoomsByBuilding(ctx context.Context, buildingID int64) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Where("building_id = ?", buildingID).Order("id").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch rooms for building %d: %w", buildingID, err)
	}
	return rooms, nil
}

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return fmt.Errorf("failed to create room %q: %w", room.Name, err)
	}
	return nil
}

// DeleteRooms removes the rooms and all reservations referencing them in a
// single transaction. Referential integrity is the application's job here,
// so reservations go first: the room row must never outlive a commit that
// could leave its reservations orphaned.
func (s *gormStore) DeleteRooms(ctx context.Context, roomIDs []int64) error {
	if len(roomIDs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("room_id IN ?", roomIDs).Delete(&model.Reservation{}).Error; err != nil {
			return fmt.Errorf("failed to delete reservations for rooms %v: %w", roomIDs, err)
		}
		if err := tx.Where("id IN ?", roomIDs).Delete(&model.Room{}).Error; err != nil {
			return fmt.Errorf("failed to delete rooms %v: %w", roomIDs, err)
		}
		return nil
	})
}

// AllReservations fetches the entire reservation table. The cache loader
// attaches rows to rooms with an in-memory scan rather than a per-room
// query; fine at this scale.
func (s *gormStore) AllReservations(ctx context.Context) ([]model.Reservation, error) {
	var reservations []model.Reservation
	if err := s.db.WithContext(ctx).Order("id").Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reservations: %w", err)
	}
	return reservations, nil
}

func (s *gormStore) CreateReservation(ctx context.Context, res *model.Reservation) error {
	if err := s.db.WithContext(ctx).Create(res).Error; err != nil {
		return fmt.Errorf("failed to create reservation for room %d: %w", res.RoomID, err)
	}
	return nil
}

func (s *gormStore) ReservationRows(ctx context.Context) ([]ReservationRow, error) {
	var rows []ReservationRow
	err := s.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Select("rooms.name as room_name, start_time, end_time, teacher_name, student_name, purpose").
		Joins("JOIN rooms ON reservations.room_id = rooms.id").
		Order("reservations.id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reservation rows: %w", err)
	}
	return rows, nil
}

// DeleteReservation deletes by (room name, start stamp). Matching zero rows
// is not an error; callers that care must inspect the returned count. The
// scalar subquery picks an arbitrary room when names collide across
// buildings, matching the historical behavior.
func (s *gormStore) DeleteReservation(ctx context.Context, roomName, startStamp string) (int64, error) {
	tx := s.db.WithContext(ctx).Exec(
		"DELETE FROM reservations WHERE room_id = (SELECT id FROM rooms WHERE name = ?) AND start_time = ?",
		roomName, startStamp,
	)
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to delete reservation %q %q: %w", roomName, startStamp, tx.Error)
	}
	return tx.RowsAffected, nil
}
