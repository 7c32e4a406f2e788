package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/shreejanpandit/doc-appointment-api/models"
)

// ListDoctors returns every doctor, or only those of departmentID when set.
func (s *Store) ListDoctors(ctx context.Context, departmentID *uint) ([]models.Doctor, error) {
	doctors := []models.Doctor{}
	query := s.db.WithContext(ctx).Order("id")
	if departmentID != nil {
		query = query.Where("department_id = ?", *departmentID)
	}
	err := query.Find(&doctors).Error
	return doctors, err
}

// FindDoctor loads a doctor; withSchedules also loads its weekly slots.
func (s *Store) FindDoctor(ctx context.Context, id uint, withSchedules bool) (*models.Doctor, error) {
	var doctor models.Doctor
	query := s.db.WithContext(ctx)
	if withSchedules {
		query = query.Preload("Schedules", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		})
	}
	if err := query.First(&doctor, id).Error; err != nil {
		return nil, lookup(err, "Doctor")
	}
	return &doctor, nil
}

func (s *Store) DoctorExists(ctx context.Context, id uint) (bool, error) {
	return s.exists(ctx, &models.Doctor{}, id)
}

// FirstOrCreateDoctor is keyed by the owning user: a user has one doctor profile.
func (s *Store) FirstOrCreateDoctor(ctx context.Context, doctor *models.Doctor) (bool, error) {
	return s.firstOrCreate(ctx, doctor, &models.Doctor{UserID: doctor.UserID})
}

func (s *Store) UpdateDoctor(ctx context.Context, doctor *models.Doctor) error {
	return s.save(ctx, doctor)
}

// DeleteDoctor removes the doctor with its schedules and appointments.
func (s *Store) DeleteDoctor(ctx context.Context, doctor *models.Doctor) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", doctor.ID).Delete(&models.Appointment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("doctor_id = ?", doctor.ID).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Doctor{}, doctor.ID).Error
	})
}
