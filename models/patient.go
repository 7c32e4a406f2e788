package models

import "time"

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Patient is the profile of a user with the patient role. One per user.
type Patient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	DOB       string    `json:"dob" gorm:"column:dob;type:varchar(10);not null"`
	Gender    string    `json:"gender" gorm:"type:varchar(10);not null"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
