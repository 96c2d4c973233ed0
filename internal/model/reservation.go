package model

// Reservation is a booked interval on a room. Start and end are stored as
// naive local-time strings in "YYYY-MM-DD HH:MM" form; conversion to and
// from the 12-hour display format happens at the read/write boundary.
//
// Nothing prevents two reservations from covering the same interval on the
// same room. The app is a tracker, not a scheduler.
type Reservation struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	RoomID      int64  `json:"room_id"`
	StartTime   string `gorm:"type:text" json:"start_time"`
	EndTime     string `gorm:"type:text" json:"end_time"`
	TeacherName string `gorm:"type:text" json:"teacher_name"`
	StudentName string `gorm:"type:text" json:"student_name"`
	Purpose     string `gorm:"type:text" json:"purpose"`
}
