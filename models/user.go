package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// Known reports whether r is one of the roles the API understands. The column
// is free text, so a stored role can be anything.
func (r Role) Known() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Doctor  *Doctor  `json:"doctor,omitempty" gorm:"foreignKey:UserID"`
	Patient *Patient `json:"patient,omitempty" gorm:"foreignKey:UserID"`
}

// UserClaims are carried by every issued bearer token. The registered ID
// claim (jti) names the session that must still exist for the token to work.
type UserClaims struct {
	UserID uint `json:"user_id"`
	Role   Role `json:"role"`
	jwt.RegisteredClaims
}
