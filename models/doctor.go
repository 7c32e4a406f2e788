package models

import "time"

// Doctor is the profile of a user with the doctor role. One per user.
type Doctor struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Contact      string    `json:"contact" gorm:"not null"`
	Bio          string    `json:"bio" gorm:"type:text;not null"`
	DepartmentID uint      `json:"department_id" gorm:"index;not null"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Department *Department `json:"department,omitempty"`
	Schedules  []Schedule  `json:"schedules,omitempty"`
}
