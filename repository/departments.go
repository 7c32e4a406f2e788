package repository

import (
	"context"

	"github.com/shreejanpandit/doc-appointment-api/models"
)

func (s *Store) ListDepartments(ctx context.Context) ([]models.Department, error) {
	departments := []models.Department{}
	err := s.db.WithContext(ctx).Order("id").Find(&departments).Error
	return departments, err
}

// FirstOrCreateDepartment is keyed by the department name.
func (s *Store) FirstOrCreateDepartment(ctx context.Context, department *models.Department) (bool, error) {
	return s.firstOrCreate(ctx, department, &models.Department{Name: department.Name})
}

func (s *Store) DepartmentExists(ctx context.Context, id uint) (bool, error) {
	return s.exists(ctx, &models.Department{}, id)
}
