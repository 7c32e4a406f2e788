package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shreejanpandit/doc-appointment-api/models"
)

func (s *Store) ListPatients(ctx context.Context) ([]models.Patient, error) {
	patients := []models.Patient{}
	err := s.db.WithContext(ctx).Order("id").Find(&patients).Error
	return patients, err
}

func (s *Store) FindPatient(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := s.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, lookup(err, "Patient")
	}
	return &patient, nil
}

// FirstOrCreatePatient is keyed by the owning user.
func (s *Store) FirstOrCreatePatient(ctx context.Context, patient *models.Patient) (bool, error) {
	return s.firstOrCreate(ctx, patient, &models.Patient{UserID: patient.UserID})
}

func (s *Store) UpdatePatient(ctx context.Context, patient *models.Patient) error {
	return s.save(ctx, patient)
}

// DeletePatient removes the patient with its appointments.
func (s *Store) DeletePatient(ctx context.Context, patient *models.Patient) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Patient{}, patient.ID).Error
	})
}
