package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/shreejanpandit/doc-appointment-api/apperrors"
	"github.com/shreejanpandit/doc-appointment-api/models"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error
}

// EmailTaken reports whether a user already uses email.
func (s *Store) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, lookup(err, "User")
	}
	return &user, nil
}

// FindUser loads a user together with its doctor and patient profiles.
func (s *Store) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Doctor").Preload("Patient").First(&user, id).Error
	if err != nil {
		return nil, lookup(err, "User")
	}
	return &user, nil
}

// EnsureAdmin creates the admin account unless a user with the email exists.
func (s *Store) EnsureAdmin(ctx context.Context, name, email, passwordHash string) (bool, error) {
	_, err := s.FindUserByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !apperrors.Is(err, apperrors.KindNotFound) {
		return false, err
	}

	admin := models.User{Name: name, Email: email, Password: passwordHash, Role: models.RoleAdmin}
	if err := s.CreateUser(ctx, &admin); err != nil {
		return false, err
	}
	return true, nil
}
