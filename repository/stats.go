package repository

import (
	"context"

	"github.com/shreejanpandit/doc-appointment-api/models"
)

type DoctorBookings struct {
	DoctorID     uint   `json:"doctor_id"`
	DoctorName   string `json:"doctor_name"`
	BookingCount int64  `json:"booking_count"`
}

type DepartmentBookings struct {
	DepartmentID   uint   `json:"department_id"`
	DepartmentName string `json:"department_name"`
	BookingCount   int64  `json:"booking_count"`
}

// BookingStats is the admin overview of appointment volume.
type BookingStats struct {
	TotalBookings  int64                `json:"total_bookings"`
	UpcomingFrom   string               `json:"upcoming_from"`
	Upcoming       int64                `json:"upcoming_bookings"`
	DoctorWise     []DoctorBookings     `json:"doctor_wise"`
	DepartmentWise []DepartmentBookings `json:"department_wise"`
}

// BookingStats counts appointments overall, from the given date onwards
// (Y-m-d), per doctor and per department.
func (s *Store) BookingStats(ctx context.Context, from string) (*BookingStats, error) {
	db := s.db.WithContext(ctx)
	stats := &BookingStats{
		UpcomingFrom:   from,
		DoctorWise:     []DoctorBookings{},
		DepartmentWise: []DepartmentBookings{},
	}

	// Query the database to count the total number of bookings
	if err := db.Model(&models.Appointment{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}

	// Dates are zero padded Y-m-d, so string order is date order
	if err := db.Model(&models.Appointment{}).Where("date >= ?", from).Count(&stats.Upcoming).Error; err != nil {
		return nil, err
	}

	err := db.Table("appointments").
		Select("appointments.doctor_id AS doctor_id, users.name AS doctor_name, COUNT(*) AS booking_count").
		Joins("JOIN doctors ON appointments.doctor_id = doctors.id").
		Joins("JOIN users ON doctors.user_id = users.id").
		Group("appointments.doctor_id, users.name").
		Order("appointments.doctor_id").
		Scan(&stats.DoctorWise).Error
	if err != nil {
		return nil, err
	}

	err = db.Table("appointments").
		Select("departments.id AS department_id, departments.name AS department_name, COUNT(*) AS booking_count").
		Joins("JOIN doctors ON appointments.doctor_id = doctors.id").
		Joins("JOIN departments ON doctors.department_id = departments.id").
		Group("departments.id, departments.name").
		Order("departments.id").
		Scan(&stats.DepartmentWise).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
