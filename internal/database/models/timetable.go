package models

import "time"

// MessTimetableEntry is one menu slot; (day, meal) is the upsert key used by
// the admin bulk editor.
type MessTimetableEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DayOfWeek string    `gorm:"uniqueIndex:idx_mess_day_meal;not null" json:"day_of_week"`
	MealType  string    `gorm:"uniqueIndex:idx_mess_day_meal;not null" json:"meal_type"`
	MenuItems string    `json:"menu_items"`
	UpdatedBy *uint     `gorm:"column:updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MessTimetableEntry) TableName() string {
	return "mess_timetable"
}

type MessFeedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	DayOfWeek string    `json:"day_of_week"`
	MealType  string    `json:"meal_type"`
	Rating    *int      `json:"rating,omitempty"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (MessFeedback) TableName() string {
	return "mess_feedback"
}

// BusTimetableEntry holds one route departure; Stops is a JSON-encoded array
// of stop names, as stored by the original editor.
type BusTimetableEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RouteName string    `gorm:"not null" json:"route_name"`
	StartTime string    `gorm:"not null" json:"start_time"`
	EndTime   string    `json:"end_time"`
	Stops     string    `json:"stops"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BusTimetableEntry) TableName() string {
	return "bus_timetable"
}
