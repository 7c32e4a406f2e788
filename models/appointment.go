package models

import "time"

type Appointment struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PatientID   uint      `json:"patient_id" gorm:"index;not null"`
	DoctorID    uint      `json:"doctor_id" gorm:"index;not null"`
	Date        string    `json:"date" gorm:"type:varchar(10);not null"`
	Time        string    `json:"time" gorm:"type:varchar(5);not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
