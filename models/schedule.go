package models

import "time"

// Schedule is a weekly availability slot of a doctor. The slot index makes
// (doctor_id, week_day, start_time, end_time) the natural key.
type Schedule struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	DoctorID  uint      `json:"doctor_id" gorm:"not null;uniqueIndex:idx_schedule_slot"`
	WeekDay   string    `json:"week_day" gorm:"type:varchar(10);not null;uniqueIndex:idx_schedule_slot"`
	StartTime string    `json:"start_time" gorm:"type:varchar(5);not null;uniqueIndex:idx_schedule_slot"`
	EndTime   string    `json:"end_time" gorm:"type:varchar(5);not null;uniqueIndex:idx_schedule_slot"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
