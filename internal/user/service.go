package user

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	errors "github.com/splitmate/splitmate/internal"
)

// Repository defines the data access methods for users.
type Repository interface {
	Create(user *User) error
	GetByID(id string) (*User, error)
	GetByMobile(mobile string) (*User, error)
	List() ([]*User, error)
}

// Service handles user business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// InviteUser registers a contact. Inviting a mobile number that already
// exists returns the existing user instead of creating a duplicate.
func (s *Service) InviteUser(dto InviteUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("invite validation failed", "error", err)
		return nil, err
	}

	mobile := NormalizeMobile(dto.Mobile)
	if existing, err := s.repo.GetByMobile(mobile); err == nil && existing != nil {
		s.logger.Info("invite matched existing user", "user_id", existing.ID)
		return existing, nil
	}

	now := time.Now()
	u := &User{
		ID:        uuid.New().String(),
		Name:      dto.Name,
		Mobile:    mobile,
		Avatar:    dto.Avatar,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "mobile", mobile)
		return nil, err
	}

	s.logger.Info("user invited", "user_id", u.ID, "name", u.Name)
	return u, nil
}

func (s *Service) GetUser(id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, errors.ErrUserNotFound
	}
	return u, nil
}

func (s *Service) ListUsers() ([]*User, error) {
	users, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}
