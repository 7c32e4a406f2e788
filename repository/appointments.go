package repository

import (
	"context"

	"github.com/shreejanpandit/doc-appointment-api/models"
)

// ListAppointments returns the appointments booked by patientID or with
// doctorID, optionally only those on date (Y-m-d). A nil id is ignored; both
// nil yields an empty list.
func (s *Store) ListAppointments(ctx context.Context, patientID, doctorID *uint, date string) ([]models.Appointment, error) {
	appointments := []models.Appointment{}

	query := s.db.WithContext(ctx).Order("id")
	switch {
	case patientID != nil && doctorID != nil:
		query = query.Where("(patient_id = ? OR doctor_id = ?)", *patientID, *doctorID)
	case patientID != nil:
		query = query.Where("patient_id = ?", *patientID)
	case doctorID != nil:
		query = query.Where("doctor_id = ?", *doctorID)
	default:
		return appointments, nil
	}

	if date != "" {
		query = query.Where("date = ?", date)
	}

	err := query.Find(&appointments).Error
	return appointments, err
}

func (s *Store) FindAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.WithContext(ctx).First(&appointment, id).Error; err != nil {
		return nil, lookup(err, "Appointment")
	}
	return &appointment, nil
}

func (s *Store) CreateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return s.db.WithContext(ctx).Create(appointment).Error
}

func (s *Store) UpdateAppointment(ctx context.Context, appointment *models.Appointment) error {
	return s.save(ctx, appointment)
}

func (s *Store) DeleteAppointment(ctx context.Context, appointment *models.Appointment) error {
	return s.db.WithContext(ctx).Delete(&models.Appointment{}, appointment.ID).Error
}
