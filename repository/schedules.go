package repository

import (
	"context"

	"github.com/shreejanpandit/doc-appointment-api/models"
)

func (s *Store) ListSchedules(ctx context.Context, doctorID uint) ([]models.Schedule, error) {
	schedules := []models.Schedule{}
	err := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Order("id").Find(&schedules).Error
	return schedules, err
}

func (s *Store) FindSchedule(ctx context.Context, id uint) (*models.Schedule, error) {
	var schedule models.Schedule
	if err := s.db.WithContext(ctx).First(&schedule, id).Error; err != nil {
		return nil, lookup(err, "Schedule")
	}
	return &schedule, nil
}

// FirstOrCreateSchedule is keyed by the whole slot: doctor, day and times.
func (s *Store) FirstOrCreateSchedule(ctx context.Context, schedule *models.Schedule) (bool, error) {
	key := &models.Schedule{
		DoctorID:  schedule.DoctorID,
		WeekDay:   schedule.WeekDay,
		StartTime: schedule.StartTime,
		EndTime:   schedule.EndTime,
	}
	return s.firstOrCreate(ctx, schedule, key)
}

func (s *Store) UpdateSchedule(ctx context.Context, schedule *models.Schedule) error {
	return s.save(ctx, schedule)
}

func (s *Store) DeleteSchedule(ctx context.Context, schedule *models.Schedule) error {
	return s.db.WithContext(ctx).Delete(&models.Schedule{}, schedule.ID).Error
}
