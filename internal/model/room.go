package model

// Room is a bookable space. Features is stored as comma-joined text,
// exactly as it is entered; splitting happens at load time.
type Room struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"type:text" json:"name"`
	BuildingID int64  `json:"building_id"`
	Floor      int    `json:"floor"`
	Capacity   int    `json:"capacity"`
	Features   string `gorm:"type:text" json:"features"`

	// Associations
	Building     Building      `gorm:"foreignKey:BuildingID" json:"-"`
	Reservations []Reservation `gorm:"foreignKey:RoomID" json:"-"`
}
