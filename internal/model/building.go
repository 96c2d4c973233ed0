package model

// Building is a top-level grouping of rooms.
//
// The buildings table is kept compatible with existing databases, so the
// model carries exactly the persisted columns and nothing else.
type Building struct {
	ID   int64  `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:text" json:"name"`

	// Associations
	Rooms []Room `gorm:"foreignKey:BuildingID" json:"-"`
}
